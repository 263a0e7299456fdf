// harness/runner.go
// Package: harness
package harness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/mwiater/jsonviewbench/internal/catalog"
)

// DefaultTimeout bounds a whole run when Benchmark.Timeout is unset.
const DefaultTimeout = 200 * time.Second

// ErrInvalidBenchmark wraps every configuration problem reported by Run.
var ErrInvalidBenchmark = errors.New("invalid benchmark")

// Benchmark times one component over a number of sequential cycles.
type Benchmark struct {
	// Component under test.
	Component catalog.Component
	// Props passed to every render.
	Props catalog.Props
	// Samples is the number of cycles to time.
	Samples int
	// Timeout bounds the whole run.
	Timeout time.Duration
	// Type selects the timed phase.
	Type BenchmarkType
	// OnComplete, if set, receives the results once every sample is collected.
	OnComplete func(BenchResults)
}

func (b *Benchmark) validate() error {
	if b.Component == nil {
		return fmt.Errorf("%w: component is required", ErrInvalidBenchmark)
	}
	if b.Samples <= 0 {
		return fmt.Errorf("%w: samples must be positive, got %d", ErrInvalidBenchmark, b.Samples)
	}
	if _, err := ParseBenchmarkType(string(b.Type)); err != nil {
		return err
	}
	return nil
}

// Run executes the configured cycles one after another and returns the
// results. OnComplete is called exactly once, and only when every sample
// was collected. The context and Timeout are checked between cycles; a
// render in progress is never interrupted.
func (b *Benchmark) Run(ctx context.Context) (BenchResults, error) {
	if err := b.validate(); err != nil {
		return BenchResults{}, err
	}
	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res := BenchResults{
		StartTime: time.Now(),
		Samples:   make([]Sample, 0, b.Samples),
	}
	for i := 0; i < b.Samples; i++ {
		if err := ctx.Err(); err != nil {
			return BenchResults{}, fmt.Errorf("benchmark interrupted after %d of %d samples: %w", i, b.Samples, err)
		}
		s, err := b.cycle()
		if err != nil {
			return BenchResults{}, fmt.Errorf("%s cycle %d: %w", b.Type, i+1, err)
		}
		res.Samples = append(res.Samples, s)
	}
	res.EndTime = time.Now()
	res.RunTime = millis(res.EndTime.Sub(res.StartTime))
	res.SampleCount = len(res.Samples)
	aggregate(&res)

	if b.OnComplete != nil {
		b.OnComplete(res)
	}
	return res, nil
}

// cycle times a single phase. The untimed phases around it put the surface
// in the state the timed phase needs and release it afterwards.
func (b *Benchmark) cycle() (Sample, error) {
	var start, end time.Time
	switch b.Type {
	case Mount:
		start = time.Now()
		s, err := catalog.Mount(b.Component, b.Props)
		end = time.Now()
		if err != nil {
			return Sample{}, err
		}
		s.Unmount()
	case Update:
		s, err := catalog.Mount(b.Component, b.Props)
		if err != nil {
			return Sample{}, err
		}
		start = time.Now()
		err = s.Update(b.Props)
		end = time.Now()
		s.Unmount()
		if err != nil {
			return Sample{}, err
		}
	case Unmount:
		s, err := catalog.Mount(b.Component, b.Props)
		if err != nil {
			return Sample{}, err
		}
		start = time.Now()
		s.Unmount()
		end = time.Now()
	}
	return Sample{Start: start, End: end, Elapsed: millis(end.Sub(start))}, nil
}

// aggregate fills the runner statistics. Errors from the stats package only
// occur on empty input, which Run never produces.
func aggregate(res *BenchResults) {
	values := make(stats.Float64Data, len(res.Samples))
	for i, s := range res.Samples {
		values[i] = s.Elapsed
	}
	res.Max, _ = values.Max()
	res.Min, _ = values.Min()
	res.Median, _ = values.Median()
	res.Mean, _ = values.Mean()
	res.StdDev, _ = values.StandardDeviation()
	res.P70, _ = values.Percentile(70)
	res.P95, _ = values.Percentile(95)
	res.P99, _ = values.Percentile(99)
}
