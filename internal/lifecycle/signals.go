package lifecycle

import (
	"context"
	"nodetrace/internal/global"
	"nodetrace/internal/logctx"
	"os"
	"os/signal"
	"syscall"
)

type Stoppable interface {
	Shutdown()
}

// Handles interrupt signals from external sources by stopping target.
// Returns after the first signal or when ctx is done.
func SignalHandler(ctx context.Context, target Stoppable) {
	// Channel for handling interrupt signals
	sigChan := make(chan os.Signal, 10)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	waitForSignal(ctx, sigChan, target)
}

func waitForSignal(ctx context.Context, sigChan <-chan os.Signal, target Stoppable) (received bool) {
	select {
	case sig := <-sigChan:
		logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog, "Received signal: %v, stopping", sig)
		target.Shutdown()
		received = true
	case <-ctx.Done():
	}
	return
}
