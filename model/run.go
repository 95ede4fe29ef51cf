package model

import (
	"context"
	"time"
)

// DefaultTickInterval is used by Run when the engine carries no interval.
const DefaultTickInterval = 150 * time.Millisecond

// Run steps e once per tick while it is Running. Ticks that arrive while the
// engine is paused are skipped. Run returns nil once the engine reaches a
// fixed point, or ctx.Err() when ctx is done.
func Run(ctx context.Context, e *Engine) error {
	interval := e.TickInterval()
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if !e.Running() {
			if e.StopReason() == StopReasonFixedPoint {
				return nil
			}
			continue
		}
		if !e.Step() {
			return nil
		}
	}
}
