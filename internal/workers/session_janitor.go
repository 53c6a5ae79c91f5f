package workers

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/akagifreeez/trade-values/internal/config"
)

// SessionSweeper is the part of the session store the janitor needs
type SessionSweeper interface {
	Sweep() int
	Len() int
}

// SessionJanitor periodically discards idle sessions and their baskets
type SessionJanitor struct {
	sessions SessionSweeper
	interval time.Duration
}

// NewSessionJanitor creates a new SessionJanitor worker
func NewSessionJanitor(sessions SessionSweeper, cfg *config.Config) *SessionJanitor {
	return &SessionJanitor{
		sessions: sessions,
		interval: cfg.SessionSweepInterval,
	}
}

// Start sweeps on every tick until ctx is cancelled
func (j *SessionJanitor) Start(ctx context.Context) {
	if j.interval <= 0 {
		log.Warn().Msg("Session janitor disabled: sweep interval is not positive")
		return
	}
	log.Info().Dur("interval", j.interval).Msg("Starting session janitor")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Session janitor stopped")
			return
		case <-ticker.C:
			j.sweep()
		}
	}
}

func (j *SessionJanitor) sweep() {
	start := time.Now()
	removed := j.sessions.Sweep()
	if removed == 0 {
		return
	}
	log.Info().
		Int("removed", removed).
		Int("remaining", j.sessions.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("Swept idle sessions")
}
