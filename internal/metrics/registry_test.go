package metrics

import (
	"testing"
	"time"
)

type staticCollector []Metric

func (collector staticCollector) CollectMetrics(interval time.Duration) []Metric {
	return collector
}

func TestRegistrySearch(t *testing.T) {
	registry := New()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	writer := staticCollector{
		{Name: "records_appended", Namespace: []string{"Tracer", "Writer"}, Value: MetricValue{Raw: 3}},
		{Name: "bytes_appended", Namespace: []string{"Tracer", "Writer"}, Value: MetricValue{Raw: 120}},
	}
	tracer := staticCollector{
		{Name: "events_emitted", Namespace: []string{"Tracer"}, Value: MetricValue{Raw: 4}},
	}

	registry.Collect(base, time.Minute, writer, tracer)
	registry.Collect(base.Add(time.Minute), time.Minute, writer)

	tests := []struct {
		name      string
		metric    string
		namespace []string
		wantCount int
		wantTotal uint64
	}{
		{name: "all", metric: "", namespace: nil, wantCount: 5, wantTotal: 3 + 120 + 4 + 3 + 120},
		{name: "by name", metric: "records_appended", namespace: nil, wantCount: 2, wantTotal: 6},
		{name: "by namespace prefix", metric: "", namespace: []string{"Tracer", "Writer"}, wantCount: 4, wantTotal: 246},
		{name: "unknown namespace", metric: "", namespace: []string{"Other"}, wantCount: 0, wantTotal: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := registry.Search(tt.metric, tt.namespace)
			if len(results) != tt.wantCount {
				t.Errorf("expected %d metrics, got %d", tt.wantCount, len(results))
			}
			if total := registry.Total(tt.metric, tt.namespace); total != tt.wantTotal {
				t.Errorf("expected total %d, got %d", tt.wantTotal, total)
			}
		})
	}
}

func TestRegistryAddUnknownSlice(t *testing.T) {
	registry := New()
	registry.Add(time.Now(), []Metric{{Name: "dropped"}})
	if results := registry.Search("", nil); len(results) != 0 {
		t.Errorf("expected no metrics, got %d", len(results))
	}
}

func TestNewTimeSliceTruncates(t *testing.T) {
	registry := New()
	now := time.Date(2026, 1, 1, 10, 10, 37, 0, time.UTC)
	got := registry.NewTimeSlice(now, time.Minute)
	want := time.Date(2026, 1, 1, 10, 10, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected slice %v, got %v", want, got)
	}
	if zero := registry.NewTimeSlice(now, 0); !zero.Equal(now) {
		t.Errorf("expected unrounded slice for zero interval, got %v", zero)
	}
}
