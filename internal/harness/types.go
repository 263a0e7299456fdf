// harness/types.go
// Package: harness
package harness

import (
	"fmt"
	"time"
)

// BenchmarkType selects which lifecycle phase of a component is timed.
type BenchmarkType string

const (
	// Mount times the first render of a component into a fresh surface.
	Mount BenchmarkType = "mount"
	// Update times a forced re-render of an already mounted component.
	Update BenchmarkType = "update"
	// Unmount times tearing a mounted component down.
	Unmount BenchmarkType = "unmount"
)

// BenchmarkTypes lists the supported types in display order.
var BenchmarkTypes = []BenchmarkType{Mount, Update, Unmount}

// ParseBenchmarkType converts a user supplied name into a BenchmarkType.
func ParseBenchmarkType(s string) (BenchmarkType, error) {
	for _, t := range BenchmarkTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown benchmark type %q (want mount, update or unmount)", ErrInvalidBenchmark, s)
}

// Data types offered for the props builder.
const (
	DataObject = "object"
	DataArray  = "array"
)

// DataTypes lists the selectable datasets in display order.
var DataTypes = []string{DataObject, DataArray}

// SampleCounts are the sample counts offered by the interactive form.
var SampleCounts = []int{10, 20, 50, 100, 200}

// Sample is one timed cycle.
type Sample struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	// Elapsed is End-Start in milliseconds.
	Elapsed float64 `json:"elapsed"`
}

// BenchResults is what a Benchmark hands to its completion callback. The
// aggregate fields are the runner's own statistics; the percentile summary
// shown to the user is computed separately by Summarize.
type BenchResults struct {
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	RunTime     float64   `json:"runTime"`
	SampleCount int       `json:"sampleCount"`
	Samples     []Sample  `json:"samples"`
	Max         float64   `json:"max"`
	Min         float64   `json:"min"`
	Median      float64   `json:"median"`
	Mean        float64   `json:"mean"`
	StdDev      float64   `json:"stdDev"`
	P70         float64   `json:"p70"`
	P95         float64   `json:"p95"`
	P99         float64   `json:"p99"`
}

// ClearSamples drops the raw samples once they have been summarized.
// SampleCount is left untouched.
func (r *BenchResults) ClearSamples() {
	r.Samples = []Sample{}
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
