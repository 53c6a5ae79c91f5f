package workers

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/akagifreeez/trade-values/internal/config"
)

// bucketIdle is how long a client must be quiet before its bucket is dropped.
// Buckets refill within a minute, so a dropped client starts with the budget it would have had.
const bucketIdle = time.Minute

// BucketSweeper is the part of the in-process rate limiter the janitor needs
type BucketSweeper interface {
	Sweep(idle time.Duration) int
	Len() int
}

// LimiterJanitor periodically drops the rate-limit buckets of quiet clients
type LimiterJanitor struct {
	buckets  BucketSweeper
	interval time.Duration
}

// NewLimiterJanitor creates a new LimiterJanitor worker
func NewLimiterJanitor(buckets BucketSweeper, cfg *config.Config) *LimiterJanitor {
	return &LimiterJanitor{
		buckets:  buckets,
		interval: cfg.SessionSweepInterval,
	}
}

// Start sweeps on every tick until ctx is cancelled
func (j *LimiterJanitor) Start(ctx context.Context) {
	if j.interval <= 0 {
		log.Warn().Msg("Rate limiter janitor disabled: sweep interval is not positive")
		return
	}
	log.Info().Dur("interval", j.interval).Msg("Starting rate limiter janitor")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Rate limiter janitor stopped")
			return
		case <-ticker.C:
			j.sweep()
		}
	}
}

func (j *LimiterJanitor) sweep() {
	removed := j.buckets.Sweep(bucketIdle)
	if removed == 0 {
		return
	}
	log.Debug().
		Int("removed", removed).
		Int("remaining", j.buckets.Len()).
		Msg("Dropped idle rate limit buckets")
}
