package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"jusbook/config"
	catalogRepo "jusbook/database/repository/catalog"
	"jusbook/models"
	ai "jusbook/services/intelligence"
	"jusbook/services/nlp"
	"jusbook/utils"
)

type simulator struct {
	repo      *catalogRepo.MemoryCatalogRepo
	engine    *ai.DialogueEngine
	sessionID string
	client    *redis.Client
}

func newSimulator(logger *zap.Logger, sessionID string) (*simulator, error) {
	sessions, client, err := openSessionStore()
	if err != nil {
		return nil, err
	}
	repo := catalogRepo.NewMemoryCatalogRepo(catalogRepo.Options{
		Days: config.AppConfig.CatalogDays,
		Seed: config.AppConfig.CatalogSeed,
	}, logger)
	return &simulator{
		repo: repo,
		engine: ai.NewDialogueEngine(repo, sessions, logger, ai.EngineOptions{
			BusinessName: config.AppConfig.BusinessName,
		}),
		sessionID: sessionID,
		client:    client,
	}, nil
}

// openSessionStore mirrors the server: Redis when configured, memory otherwise.
func openSessionStore() (ai.SessionStore, *redis.Client, error) {
	if config.AppConfig.SessionBackend != "redis" {
		return ai.NewMemorySessionStore(), nil, nil
	}
	if err := utils.InitSessionCache(); err != nil {
		return nil, nil, err
	}
	client := utils.GetSessionCacheClient()
	return ai.NewRedisSessionStore(client, config.AppConfig.SessionTTL()), client, nil
}

func (s *simulator) close() {
	if s.client != nil {
		_ = s.client.Close()
	}
}

func (s *simulator) send(ctx context.Context, out io.Writer, msg string) error {
	resp, err := s.engine.ProcessMessage(ctx, models.ChatRequest{Message: msg, SessionID: s.sessionID})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "[%s %.2f]\n%s\n\n", resp.Intent, resp.Confidence, resp.Response)
	return nil
}

// replay runs a full booking against today's first open time.
func (s *simulator) replay(ctx context.Context, out io.Writer) error {
	slot := "10:00 AM"
	if open := s.repo.AvailableTimes(time.Now().Format(nlp.DateLayout)); len(open) > 0 {
		slot = open[0]
	}
	for _, msg := range []string{"hi", "what services do you offer", "book", "Haircut & Styling", slot, "any", "confirm", "Jane Doe, 9876543210", "show my bookings"} {
		fmt.Fprintf(out, "> %s\n", msg)
		if err := s.send(ctx, out, msg); err != nil {
			return err
		}
	}
	return nil
}

func (s *simulator) interactive(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Type a message, or 'quit' to exit.")
	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, "> ")
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "quit" || line == "exit" {
			return nil
		}
		if line != "" {
			if sendErr := s.send(ctx, out, line); sendErr != nil {
				return sendErr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
