// services/scheduler.go
package services

import (
	"context"
	"sync"
	"time"

	"ecometer/models"
	"ecometer/utils"

	"github.com/go-co-op/gocron/v2"
)

// LeaderboardCache serves the last fetched roster. Until the first refresh
// succeeds every Fetch goes to the source.
type LeaderboardCache struct {
	source LeaderboardSource

	mu          sync.RWMutex
	entries     []models.LeaderboardEntry
	filled      bool
	refreshedAt time.Time
}

func NewLeaderboardCache(source LeaderboardSource) *LeaderboardCache {
	return &LeaderboardCache{source: source}
}

// Refresh pulls the roster from the source. On failure the previous roster is kept.
func (c *LeaderboardCache) Refresh(ctx context.Context) error {
	entries, err := c.source.Fetch(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.entries = entries
	c.filled = true
	c.refreshedAt = time.Now()
	c.mu.Unlock()
	return nil
}

func (c *LeaderboardCache) Fetch(ctx context.Context) ([]models.LeaderboardEntry, error) {
	c.mu.RLock()
	if c.filled {
		out := append([]models.LeaderboardEntry(nil), c.entries...)
		c.mu.RUnlock()
		return out, nil
	}
	c.mu.RUnlock()

	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}
	return c.Fetch(ctx)
}

// RefreshedAt reports when the roster was last pulled; zero if never.
func (c *LeaderboardCache) RefreshedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshedAt
}

// StartLeaderboardRefresh refreshes cache every interval, starting now.
// The caller owns the returned scheduler and must Shutdown it.
func StartLeaderboardRefresh(cache *LeaderboardCache, interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			if err := cache.Refresh(ctx); err != nil {
				utils.Logger.Warn().Err(err).Msg("[Scheduler] ⚠️ leaderboard refresh failed, keeping previous roster")
				return
			}
			utils.Logger.Debug().Msg("[Scheduler] ✅ leaderboard refreshed")
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, err
	}

	sched.Start()
	return sched, nil
}
