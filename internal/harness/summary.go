// harness/summary.go
// Package: harness
package harness

import (
	"errors"
	"math"
	"slices"
)

// ErrInsufficientData is returned when summarizing an empty sample set.
var ErrInsufficientData = errors.New("insufficient data: no samples to summarize")

// Ranks are the percentile ranks reported for every run.
var Ranks = []int{50, 70, 90, 95, 99}

// PercentileSummary holds the elapsed value at each rank in Ranks.
type PercentileSummary struct {
	P50 float64 `json:"p50"`
	P70 float64 `json:"p70"`
	P90 float64 `json:"p90"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

// At returns the value for rank, or false when rank is not one of Ranks.
func (s PercentileSummary) At(rank int) (float64, bool) {
	switch rank {
	case 50:
		return s.P50, true
	case 70:
		return s.P70, true
	case 90:
		return s.P90, true
	case 95:
		return s.P95, true
	case 99:
		return s.P99, true
	}
	return 0, false
}

// Map returns the summary keyed by rank.
func (s PercentileSummary) Map() map[int]float64 {
	out := make(map[int]float64, len(Ranks))
	for _, r := range Ranks {
		out[r], _ = s.At(r)
	}
	return out
}

// Percentile returns the nearest-rank value for p (0..100) in an ascending
// slice: sorted[floor(len*p/100)], with the index clamped to the slice.
// No interpolation is done, so results are biased low.
func Percentile(sorted []float64, p float64) float64 {
	idx := int(math.Floor(float64(len(sorted)) * p / 100))
	if idx < 0 {
		idx = 0
	}
	if idx > len(sorted)-1 {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// Summarize computes the percentile summary of samples. The input is not
// modified; callers drop it afterwards.
func Summarize(samples []Sample) (PercentileSummary, error) {
	if len(samples) == 0 {
		return PercentileSummary{}, ErrInsufficientData
	}
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.Elapsed
	}
	slices.Sort(values)

	return PercentileSummary{
		P50: Percentile(values, 50),
		P70: Percentile(values, 70),
		P90: Percentile(values, 90),
		P95: Percentile(values, 95),
		P99: Percentile(values, 99),
	}, nil
}
