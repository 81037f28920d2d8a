package engine

import (
	"context"
	"log"
	"sync/atomic"
	"time"
)

// Ticker drives the engine on a fixed period. The first tick runs
// immediately; a tick never overlaps a still-running one (the guard trips
// only if a tick outlives the period, in which case that beat is dropped).
type Ticker struct {
	Engine   Engine
	Interval time.Duration
	Logger   *log.Logger

	running atomic.Bool
}

// Run blocks until ctx is done.
func (t *Ticker) Run(ctx context.Context) {
	interval := t.Interval
	if interval <= 0 {
		interval = time.Minute
	}

	t.tick(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.tick(ctx)
		}
	}
}

func (t *Ticker) tick(ctx context.Context) {
	if !t.running.CompareAndSwap(false, true) {
		t.logf("tick still running, skipping beat")
		return
	}
	defer t.running.Store(false)

	res, err := t.Engine.RunTick(ctx)
	if err != nil {
		t.logf("tick failed: %v", err)
		return
	}
	if res.Dispatched > 0 || res.Cleared > 0 {
		t.logf("tick at %s: %d seen, %d dispatched, %d cleared",
			res.At.Format("15:04"), res.TasksSeen, res.Dispatched, res.Cleared)
	}
}

func (t *Ticker) logf(format string, args ...any) {
	if t.Logger == nil {
		return
	}
	t.Logger.Printf("[ticker] "+format, args...)
}
