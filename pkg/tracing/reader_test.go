package tracing

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func frameAll(t *testing.T, events ...Event) (stream []byte, ends []int) {
	t.Helper()
	for _, event := range events {
		record, err := Frame(event)
		if err != nil {
			t.Fatalf("failed to frame event: %v", err)
		}
		stream = append(stream, record...)
		ends = append(ends, len(stream))
	}
	return
}

func TestReaderTruncatedTail(t *testing.T) {
	events := []Event{
		{Timestamp: Timestamp{Seconds: 1}, Body: NodeStarted{NodeID: "A"}},
		{Timestamp: Timestamp{Seconds: 2}, Body: SendOrdinaryMessage{Sender: "A", Recipient: "B", Message: Ping{RequestID: "1", EnrSeq: 5}}},
		{Timestamp: Timestamp{Seconds: 3}, Body: Shutdown{NodeID: "A"}},
	}
	stream, ends := frameAll(t, events...)

	tests := []struct {
		name       string
		cut        int
		wantEvents int
		wantErr    error
	}{
		{
			name:       "complete stream",
			cut:        len(stream),
			wantEvents: 3,
		},
		{
			name:       "empty stream",
			cut:        0,
			wantEvents: 0,
		},
		{
			name:       "cut inside last payload",
			cut:        len(stream) - 1,
			wantEvents: 2,
			wantErr:    ErrTruncated,
		},
		{
			name:       "only length prefix of last record",
			cut:        ends[1] + 1,
			wantEvents: 2,
			wantErr:    ErrTruncated,
		},
		{
			name:       "cut inside second record",
			cut:        ends[0] + 3,
			wantEvents: 1,
			wantErr:    ErrTruncated,
		},
		{
			name:       "exact record boundary",
			cut:        ends[1],
			wantEvents: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadAll(bytes.NewReader(stream[:tt.cut]))
			if tt.wantErr == nil && err != nil {
				t.Fatalf("expected no error, got '%v'", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error '%v', got '%v'", tt.wantErr, err)
			}
			if len(got) != tt.wantEvents {
				t.Fatalf("expected %d complete events, got %d", tt.wantEvents, len(got))
			}
			for i := range got {
				if got[i].Timestamp != events[i].Timestamp || got[i].Body.Kind() != events[i].Body.Kind() {
					t.Errorf("event %d: expected %v, got %v", i, events[i], got[i])
				}
			}
		})
	}
}

func TestReaderTruncatedInsideVarint(t *testing.T) {
	// A 200 byte payload needs a two byte length prefix
	long := Event{Body: NodeStarted{NodeID: string(bytes.Repeat([]byte("n"), 200))}}
	stream, _ := frameAll(t, long)
	if stream[0]&0x80 == 0 {
		t.Fatalf("expected multi-byte length prefix")
	}

	reader := NewReader(bytes.NewReader(stream[:1]))
	_, err := reader.Next()
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected truncated error, got '%v'", err)
	}
}

func TestReaderOffsetAndCount(t *testing.T) {
	stream, ends := frameAll(t,
		Event{Body: NodeStarted{NodeID: "A"}},
		Event{Body: Shutdown{NodeID: "A"}},
	)

	reader := NewReader(bytes.NewReader(stream[:len(stream)-2]))
	if _, err := reader.Next(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reader.Offset() != int64(ends[0]) {
		t.Errorf("expected offset %d, got %d", ends[0], reader.Offset())
	}

	_, err := reader.Next()
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected truncated error, got '%v'", err)
	}
	if reader.Offset() != int64(ends[0]) {
		t.Errorf("expected offset to stay at last complete record %d, got %d", ends[0], reader.Offset())
	}
	if reader.Count() != 1 {
		t.Errorf("expected 1 complete record, got %d", reader.Count())
	}
}

func TestReaderCleanEOF(t *testing.T) {
	stream, _ := frameAll(t, Event{Body: NodeStarted{NodeID: "A"}})
	reader := NewReader(bytes.NewReader(stream))
	if _, err := reader.Next(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := reader.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got '%v'", err)
	}
}

func TestReaderOversizedRecord(t *testing.T) {
	stream := protowire.AppendVarint(nil, MaxRecordLen+1)
	_, err := ReadAll(bytes.NewReader(stream))
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected corrupt error, got '%v'", err)
	}
}
