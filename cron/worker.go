package cron

import (
	"context"
	"time"

	"go.uber.org/zap"

	catalogRepo "jusbook/database/repository/catalog"
)

// StartSlotRefresher keeps the rolling slot window seeded. It refreshes once immediately,
// then on every tick until ctx is cancelled. The returned channel closes when the loop exits.
func StartSlotRefresher(ctx context.Context, repo catalogRepo.CatalogRepository, interval time.Duration, logger *zap.Logger) <-chan struct{} {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = time.Hour
	}
	done := make(chan struct{})

	refresh := func() {
		if added := repo.RefreshWindow(time.Now()); added > 0 {
			logger.Info("[SlotRefresher] Seeded new slots", zap.Int("added", added))
		}
	}

	go func() {
		defer close(done)
		logger.Info("[SlotRefresher] Starting", zap.Duration("interval", interval))
		refresh()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Info("[SlotRefresher] Stopped")
				return
			case <-ticker.C:
				refresh()
			}
		}
	}()
	return done
}
