// Central registry for storing time-sliced counters reported by the tracer and writer
package metrics

import (
	"sort"
	"strings"
	"time"
)

// Creates new metric registry storage
func New() (registry *Registry) {
	registry = &Registry{
		metrics: make(map[time.Time]map[string]map[string]Metric),
	}
	return
}

// Setup metrics map for this collection interval
func (registry *Registry) NewTimeSlice(now time.Time, interval time.Duration) (timeSlice time.Time) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	timeSlice = now
	if interval > 0 {
		timeSlice = now.Truncate(interval)
	}
	if registry.metrics[timeSlice] == nil {
		registry.metrics[timeSlice] = make(map[string]map[string]Metric)
	}
	return
}

// Adds batch of metrics to a time slice. Unknown slices are ignored.
func (registry *Registry) Add(timeSlice time.Time, metrics []Metric) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	slice := registry.metrics[timeSlice]
	if slice == nil {
		return
	}

	for _, metric := range metrics {
		namespace := strings.Join(metric.Namespace, "/")
		if slice[namespace] == nil {
			slice[namespace] = make(map[string]Metric)
		}
		slice[namespace][metric.Name] = metric
	}
}

// Collects from every collector into a fresh time slice
func (registry *Registry) Collect(now time.Time, interval time.Duration, collectors ...Collector) (timeSlice time.Time) {
	timeSlice = registry.NewTimeSlice(now, interval)
	for _, collector := range collectors {
		registry.Add(timeSlice, collector.CollectMetrics(interval))
	}
	return
}

// Supports exact match or prefix match. Empty query matches all.
func matchesNamespace(metricNS, queryNS []string) (matches bool) {
	if len(metricNS) < len(queryNS) {
		return
	}
	for i := range queryNS {
		if metricNS[i] != queryNS[i] {
			return
		}
	}
	matches = true
	return
}

// Returns all metrics matching given name and namespace prefix, oldest slice first.
// Empty name or prefix matches everything.
func (registry *Registry) Search(name string, namespacePrefix []string) (results []Metric) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	timestamps := make([]time.Time, 0, len(registry.metrics))
	for ts := range registry.metrics {
		timestamps = append(timestamps, ts)
	}
	sort.Slice(timestamps, func(i, j int) bool {
		return timestamps[i].Before(timestamps[j])
	})

	for _, ts := range timestamps {
		namespaces := make([]string, 0, len(registry.metrics[ts]))
		for ns := range registry.metrics[ts] {
			namespaces = append(namespaces, ns)
		}
		sort.Strings(namespaces)

		for _, ns := range namespaces {
			if !matchesNamespace(strings.Split(ns, "/"), namespacePrefix) {
				continue
			}

			byName := registry.metrics[ts][ns]
			names := make([]string, 0, len(byName))
			for metricName := range byName {
				names = append(names, metricName)
			}
			sort.Strings(names)

			for _, metricName := range names {
				if name == "" || metricName == name {
					results = append(results, byName[metricName])
				}
			}
		}
	}
	return
}

// Sum of Raw values for name under the namespace prefix across all slices
func (registry *Registry) Total(name string, namespacePrefix []string) (total uint64) {
	for _, metric := range registry.Search(name, namespacePrefix) {
		total += metric.Value.Raw
	}
	return
}
