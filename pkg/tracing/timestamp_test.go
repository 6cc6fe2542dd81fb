package tracing

import (
	"errors"
	"testing"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestFromTime(t *testing.T) {
	tests := []struct {
		name        string
		input       time.Time
		wantSeconds int64
		wantNanos   uint32
	}{
		{
			name:        "epoch",
			input:       time.Unix(0, 0),
			wantSeconds: 0,
			wantNanos:   0,
		},
		{
			name:        "nanosecond precision",
			input:       time.Date(2026, 1, 31, 12, 34, 56, 123456789, time.UTC),
			wantSeconds: 1769862896,
			wantNanos:   123456789,
		},
		{
			name:        "non-UTC location",
			input:       time.Date(2026, 1, 31, 14, 34, 56, 7, time.FixedZone("UTC+2", 2*3600)),
			wantSeconds: 1769862896,
			wantNanos:   7,
		},
		{
			name:        "pre-epoch keeps nanos non-negative",
			input:       time.Unix(0, -1),
			wantSeconds: -1,
			wantNanos:   999999999,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromTime(tt.input)
			if got.Seconds != tt.wantSeconds {
				t.Errorf("expected seconds %d, got %d", tt.wantSeconds, got.Seconds)
			}
			if got.Nanos != tt.wantNanos {
				t.Errorf("expected nanos %d, got %d", tt.wantNanos, got.Nanos)
			}
			if !got.AsTime().Equal(tt.input) {
				t.Errorf("expected %v back, got %v", tt.input, got.AsTime())
			}
		})
	}
}

func TestNow(t *testing.T) {
	before := time.Now()
	ts := Now()
	after := time.Now()

	if ts.Nanos >= 1_000_000_000 {
		t.Fatalf("nanos out of range: %d", ts.Nanos)
	}
	got := ts.AsTime()
	if got.Before(before.Truncate(time.Nanosecond)) || got.After(after) {
		t.Errorf("expected timestamp between %v and %v, got %v", before, after, got)
	}
}

func TestTimestampProto(t *testing.T) {
	ts := Timestamp{Seconds: 42, Nanos: 999999999}
	back, err := FromProto(ts.Proto())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back != ts {
		t.Errorf("expected %v, got %v", ts, back)
	}

	if _, err := FromProto(nil); !errors.Is(err, ErrEncoding) {
		t.Errorf("expected encoding error for nil timestamp, got '%v'", err)
	}
	if _, err := FromProto(&timestamppb.Timestamp{Nanos: -1}); !errors.Is(err, ErrEncoding) {
		t.Errorf("expected encoding error for negative nanos, got '%v'", err)
	}
}
