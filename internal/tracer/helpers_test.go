package tracer

import (
	"nodetrace/pkg/tracing"
	"os"
	"testing"
)

func readFile(t *testing.T, path string) (events []tracing.Event) {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open trace log: %v", err)
	}
	defer file.Close()

	events, err = tracing.ReadAll(file)
	if err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}
	return
}
