// Package engine runs the periodic settlement-update cycle. It owns
// scheduling and transactions — loading snapshots from the store, invoking
// the danger and decision computations, and persisting what they return. The
// computations themselves live in internal/danger and internal/decision and
// stay free of I/O.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Engine fires update cycles on a fixed interval.
type Engine struct {
	Interval time.Duration
	OnCycle  func(ctx context.Context)

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates an engine with the given cycle interval.
func New(interval time.Duration) *Engine {
	return &Engine{
		Interval: interval,
		stop:     make(chan struct{}),
	}
}

// Run executes cycles until Stop is called or the context ends. The first
// cycle fires immediately rather than one interval in.
func (e *Engine) Run(ctx context.Context) {
	slog.Info("update engine started", "interval", e.Interval)

	ticker := time.NewTicker(e.Interval)
	defer ticker.Stop()

	for {
		if e.OnCycle != nil {
			e.OnCycle(ctx)
		}

		select {
		case <-ctx.Done():
			slog.Info("update engine stopped", "reason", ctx.Err())
			return
		case <-e.stop:
			slog.Info("update engine stopped")
			return
		case <-ticker.C:
		}
	}
}

// Stop halts the run loop after the in-flight cycle finishes. Safe to call
// more than once; every signal path shutting the daemon down may race here.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		close(e.stop)
	})
}
