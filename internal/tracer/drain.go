package tracer

import (
	"context"
	"nodetrace/internal/global"
	"nodetrace/internal/logctx"
	"time"
)

// Consecutive zero readings required before the tracer counts as drained
const drainStreak int = 3

// Marks one emission finished. Never wraps below zero.
func (tracer *Tracer) release() {
	for {
		current := tracer.metrics.InFlight.Load()
		if current == 0 {
			return
		}
		if tracer.metrics.InFlight.CompareAndSwap(current, current-1) {
			return
		}
	}
}

// Waits until no emission is between timestamp capture and append, or until timeout.
// Called before the writer is closed.
func (tracer *Tracer) Drain(ctx context.Context, timeout time.Duration) (drained bool, inFlight uint64) {
	backoff := 10 * time.Millisecond
	const maxBackoff = 500 * time.Millisecond

	deadline := time.Now().Add(timeout)
	streak := 0
	for {
		inFlight = tracer.metrics.InFlight.Load()
		if inFlight == 0 {
			streak++
			if streak >= drainStreak {
				drained = true
				return
			}
		} else {
			streak = 0
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			ctx = logctx.AppendCtxTag(ctx, global.NSTracer)
			logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
				"%d emissions still in flight after %s", inFlight, timeout)
			return
		}

		time.Sleep(min(backoff, remaining))
		backoff = min(backoff*2, maxBackoff)
	}
}
