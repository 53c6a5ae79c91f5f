package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akagifreeez/trade-values/internal/config"
)

type countingSweeper struct {
	sweeps atomic.Int32
}

func (c *countingSweeper) Sweep() int {
	c.sweeps.Add(1)
	return 1
}

func (c *countingSweeper) Len() int { return 0 }

func TestSessionJanitor_sweepsUntilCancelled(t *testing.T) {
	t.Parallel()

	sweeper := &countingSweeper{}
	j := NewSessionJanitor(sweeper, &config.Config{SessionSweepInterval: 5 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		j.Start(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for sweeper.sweeps.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("janitor did not sweep")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not stop after cancel")
	}
}

func TestSessionJanitor_disabled(t *testing.T) {
	t.Parallel()

	sweeper := &countingSweeper{}
	j := NewSessionJanitor(sweeper, &config.Config{})

	// Returns immediately without a positive interval
	j.Start(context.Background())
	if n := sweeper.sweeps.Load(); n != 0 {
		t.Errorf("sweeps = %d, want 0", n)
	}
}

type countingBuckets struct {
	sweeps atomic.Int32
	idle   atomic.Int64
}

func (c *countingBuckets) Sweep(idle time.Duration) int {
	c.idle.Store(int64(idle))
	c.sweeps.Add(1)
	return 3
}

func (c *countingBuckets) Len() int { return 0 }

func TestLimiterJanitor_sweepsIdleBuckets(t *testing.T) {
	t.Parallel()

	buckets := &countingBuckets{}
	j := NewLimiterJanitor(buckets, &config.Config{SessionSweepInterval: 5 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		j.Start(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for buckets.sweeps.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("janitor did not sweep")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	<-done

	if got := time.Duration(buckets.idle.Load()); got != bucketIdle {
		t.Errorf("swept with idle %v, want %v", got, bucketIdle)
	}
}
