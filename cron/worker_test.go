package cron

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogRepo "jusbook/database/repository/catalog"
)

type countingRepo struct {
	catalogRepo.CatalogRepository
	calls atomic.Int32
}

func (r *countingRepo) RefreshWindow(time.Time) int {
	r.calls.Add(1)
	return 1
}

func TestSlotRefresherTicksUntilCancelled(t *testing.T) {
	repo := &countingRepo{}
	ctx, cancel := context.WithCancel(context.Background())
	done := StartSlotRefresher(ctx, repo, 10*time.Millisecond, nil)

	require.Eventually(t, func() bool { return repo.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop")
	}
	stopped := repo.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, repo.calls.Load())
}

func TestSlotRefresherExtendsWindow(t *testing.T) {
	repo := catalogRepo.NewMemoryCatalogRepo(catalogRepo.Options{
		Seed: 1,
		Now:  func() time.Time { return time.Now().AddDate(0, 0, -3) },
	}, nil)
	before := repo.Statistics().TotalSlots

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartSlotRefresher(ctx, repo, time.Hour, nil)

	require.Eventually(t, func() bool { return repo.Statistics().TotalSlots > before }, time.Second, 5*time.Millisecond)
}
