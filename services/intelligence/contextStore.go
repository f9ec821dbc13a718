// File: services/intelligence/contextStore.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"jusbook/models"
)

const sessionKeyPrefix = "chat:session:"

// RedisSessionStore persists sessions as JSON documents. A zero ttl keeps them forever.
// Updates are serialized per session inside this process; run a single instance per keyspace.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
	locks  *keyedMutex
	now    func() time.Time
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
		ttl:    ttl,
		locks:  newKeyedMutex(),
		now:    time.Now,
	}
}

func (s *RedisSessionStore) load(ctx context.Context, sessionID string) (*models.Session, bool, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	var sess models.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, false, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return &sess, true, nil
}

func (s *RedisSessionStore) save(ctx context.Context, sess *models.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.ID, err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+sess.ID, b, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", sess.ID, err)
	}
	return nil
}

func (s *RedisSessionStore) GetOrCreate(ctx context.Context, sessionID string) (*models.Session, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	sess, ok, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if ok {
		return sess, nil
	}
	fresh := models.NewSession(sessionID, s.now())
	if err := s.save(ctx, &fresh); err != nil {
		return nil, err
	}
	return &fresh, nil
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.Session, bool, error) {
	return s.load(ctx, sessionID)
}

func (s *RedisSessionStore) Update(ctx context.Context, sessionID string, fn func(*models.Session) error) (*models.Session, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	sess, ok, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		fresh := models.NewSession(sessionID, s.now())
		sess = &fresh
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	sess.ID = sessionID
	sess.UpdatedAt = s.now()
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Clear drops a session so the next message starts over.
func (s *RedisSessionStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
