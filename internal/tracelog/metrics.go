package tracelog

import (
	"nodetrace/internal/metrics"
	"time"
)

func (writer *Writer) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	// Read and clear
	records := writer.metrics.RecordsAppended.Swap(0)
	bytes := writer.metrics.BytesAppended.Swap(0)
	failures := writer.metrics.AppendFailures.Swap(0)
	resets := writer.metrics.Resets.Swap(0)

	// Record read time
	recordTime := time.Now()

	collection = []metrics.Metric{
		{
			Name:        "records_appended",
			Description: "Records durably appended to the trace log in the interval",
			Namespace:   writer.Namespace,
			Value:       metrics.MetricValue{Raw: records, Unit: "count", Interval: interval},
			Type:        metrics.Counter,
			Timestamp:   recordTime,
		},
		{
			Name:        "bytes_appended",
			Description: "Bytes durably appended to the trace log in the interval",
			Namespace:   writer.Namespace,
			Value:       metrics.MetricValue{Raw: bytes, Unit: "bytes", Interval: interval},
			Type:        metrics.Counter,
			Timestamp:   recordTime,
		},
		{
			Name:        "append_failures",
			Description: "Appends rejected or rolled back in the interval",
			Namespace:   writer.Namespace,
			Value:       metrics.MetricValue{Raw: failures, Unit: "count", Interval: interval},
			Type:        metrics.Counter,
			Timestamp:   recordTime,
		},
		{
			Name:        "resets",
			Description: "Trace log resets in the interval",
			Namespace:   writer.Namespace,
			Value:       metrics.MetricValue{Raw: resets, Unit: "count", Interval: interval},
			Type:        metrics.Counter,
			Timestamp:   recordTime,
		},
	}
	return
}
