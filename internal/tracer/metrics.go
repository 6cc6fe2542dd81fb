package tracer

import (
	"nodetrace/internal/metrics"
	"time"
)

func (tracer *Tracer) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	// Read and clear
	emitted := tracer.metrics.Emitted.Swap(0)
	failed := tracer.metrics.Failed.Swap(0)

	inFlight := tracer.metrics.InFlight.Load()

	// Record read time
	recordTime := time.Now()

	collection = []metrics.Metric{
		{
			Name:        "events_emitted",
			Description: "Events recorded in the trace log in the interval",
			Namespace:   tracer.Namespace,
			Value:       metrics.MetricValue{Raw: emitted, Unit: "count", Interval: interval},
			Type:        metrics.Counter,
			Timestamp:   recordTime,
		},
		{
			Name:        "events_failed",
			Description: "Events rejected or not appended in the interval",
			Namespace:   tracer.Namespace,
			Value:       metrics.MetricValue{Raw: failed, Unit: "count", Interval: interval},
			Type:        metrics.Counter,
			Timestamp:   recordTime,
		},
		{
			Name:        "events_in_flight",
			Description: "Emissions between timestamp capture and append at collection time",
			Namespace:   tracer.Namespace,
			Value:       metrics.MetricValue{Raw: inFlight, Unit: "count", Interval: interval},
			Type:        metrics.Gauge,
			Timestamp:   recordTime,
		},
	}
	return
}
