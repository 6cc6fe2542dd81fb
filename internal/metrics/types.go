package metrics

import (
	"sync"
	"time"
)

type Registry struct {
	mu      sync.RWMutex
	metrics map[time.Time]map[string]map[string]Metric // key0=time slice, key1=namespace, key2=name
}

type MetricType string

const (
	Counter MetricType = "counter" // always increasing
	Gauge   MetricType = "gauge"   // can go up/down
)

// Container for a metric and associated data
type Metric struct {
	Name        string // e.g. records_appended
	Description string
	Namespace   []string // e.g. "Tracer/Writer"
	Value       MetricValue
	Type        MetricType
	Timestamp   time.Time // time when the metric was recorded
}

// Specific value of a metric
type MetricValue struct {
	Raw      uint64
	Unit     string        // e.g. "bytes", "count"
	Interval time.Duration // measurement window
}

// Anything that reports counters for an interval
type Collector interface {
	CollectMetrics(interval time.Duration) []Metric
}
