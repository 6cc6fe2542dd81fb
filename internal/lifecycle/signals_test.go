package lifecycle

import (
	"context"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
)

type stopCounter struct {
	calls atomic.Int32
}

func (s *stopCounter) Shutdown() {
	s.calls.Add(1)
}

func TestWaitForSignal(t *testing.T) {
	tests := []struct {
		name          string
		sendSignal    bool
		cancelCtx     bool
		expectStopped int32
	}{
		{name: "signal stops target", sendSignal: true, expectStopped: 1},
		{name: "context done leaves target running", cancelCtx: true, expectStopped: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			if tt.sendSignal {
				sigChan <- syscall.SIGTERM
			}
			if tt.cancelCtx {
				cancel()
			}

			target := &stopCounter{}
			received := waitForSignal(ctx, sigChan, target)
			if received != tt.sendSignal {
				t.Errorf("expected received=%v, got %v", tt.sendSignal, received)
			}
			if got := target.calls.Load(); got != tt.expectStopped {
				t.Errorf("expected %d shutdown calls, got %d", tt.expectStopped, got)
			}
		})
	}
}

func TestSignalHandlerReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		SignalHandler(ctx, &stopCounter{})
		close(done)
	}()
	cancel()
	<-done
}
