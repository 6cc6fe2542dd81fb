package simulate

import (
	"slices"
	"time"
)

// Mean after dropping trim of the samples from each end of the sorted set
func trimmedMean(samples []time.Duration, trim float64) (mean time.Duration) {
	n := len(samples)
	if n == 0 {
		return
	}
	if trim < 0 {
		trim = 0
	}

	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	drop := int(float64(n) * trim)
	if drop*2 >= n {
		drop = (n - 1) / 2
	}
	kept := sorted[drop : n-drop]

	var sum time.Duration
	for _, sample := range kept {
		sum += sample
	}
	mean = sum / time.Duration(len(kept))
	return
}
