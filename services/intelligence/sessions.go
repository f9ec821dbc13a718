// File: services/intelligence/sessions.go
package ai

import (
	"context"
	"sync"
	"time"

	"jusbook/models"
)

// SessionStore holds per-conversation state. Update runs the mutator under a per-session
// lock and persists the result only when the mutator returns nil.
type SessionStore interface {
	GetOrCreate(ctx context.Context, sessionID string) (*models.Session, error)
	Get(ctx context.Context, sessionID string) (*models.Session, bool, error)
	Update(ctx context.Context, sessionID string, fn func(*models.Session) error) (*models.Session, error)
}

type sessionEntry struct {
	mu      sync.Mutex
	session models.Session
}

// MemorySessionStore keeps sessions for the process lifetime.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	now      func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*sessionEntry),
		now:      time.Now,
	}
}

// entry returns the entry for id, creating it atomically on first reference.
func (s *MemorySessionStore) entry(id string) *sessionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		e = &sessionEntry{session: models.NewSession(id, s.now())}
		s.sessions[id] = e
	}
	return e
}

func (s *MemorySessionStore) GetOrCreate(_ context.Context, sessionID string) (*models.Session, error) {
	e := s.entry(sessionID)
	e.mu.Lock()
	defer e.mu.Unlock()

	out := e.session.Clone()
	return &out, nil
}

func (s *MemorySessionStore) Get(_ context.Context, sessionID string) (*models.Session, bool, error) {
	s.mu.Lock()
	e, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, false, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.session.Clone()
	return &out, true, nil
}

func (s *MemorySessionStore) Update(_ context.Context, sessionID string, fn func(*models.Session) error) (*models.Session, error) {
	e := s.entry(sessionID)
	e.mu.Lock()
	defer e.mu.Unlock()

	working := e.session.Clone()
	if err := fn(&working); err != nil {
		return nil, err
	}
	working.ID = sessionID
	working.UpdatedAt = s.now()
	e.session = working

	out := working.Clone()
	return &out, nil
}

// Len reports how many sessions exist.
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// keyedMutex serializes work per key; idle keys are released.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedLock)}
}

func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
