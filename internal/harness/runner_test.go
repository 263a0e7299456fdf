package harness

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwiater/jsonviewbench/internal/catalog"
)

// countingComponent records how many times it rendered.
type countingComponent struct {
	renders int
	failAt  int
}

func (c *countingComponent) render(w io.Writer, p catalog.Props) error {
	c.renders++
	if c.failAt > 0 && c.renders == c.failAt {
		return errors.New("render failed")
	}
	_, err := io.WriteString(w, "ok")
	return err
}

func TestBenchmark_RunCollectsSamples(t *testing.T) {
	for _, typ := range BenchmarkTypes {
		t.Run(string(typ), func(t *testing.T) {
			comp := &countingComponent{}
			calls := 0
			var got BenchResults
			b := Benchmark{
				Component: comp.render,
				Samples:   10,
				Type:      typ,
				OnComplete: func(res BenchResults) {
					calls++
					got = res
				},
			}

			res, err := b.Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 1, calls, "OnComplete must fire exactly once")
			assert.Equal(t, res, got)
			assert.Len(t, res.Samples, 10)
			assert.Equal(t, 10, res.SampleCount)
			assert.False(t, res.EndTime.Before(res.StartTime))
			assert.LessOrEqual(t, res.Min, res.Median)
			assert.LessOrEqual(t, res.Median, res.Max)
			for _, s := range res.Samples {
				assert.GreaterOrEqual(t, s.Elapsed, 0.0)
			}

			want := 10
			if typ == Update {
				want = 20
			}
			assert.Equal(t, want, comp.renders)
		})
	}
}

func TestBenchmark_Validation(t *testing.T) {
	comp := &countingComponent{}
	cases := map[string]Benchmark{
		"nil component": {Samples: 1, Type: Mount},
		"zero samples":  {Component: comp.render, Type: Mount},
		"bad type":      {Component: comp.render, Samples: 1, Type: "upated"},
	}
	for name, b := range cases {
		t.Run(name, func(t *testing.T) {
			called := false
			b.OnComplete = func(BenchResults) { called = true }
			_, err := b.Run(context.Background())
			assert.ErrorIs(t, err, ErrInvalidBenchmark)
			assert.False(t, called)
		})
	}
}

func TestBenchmark_RenderErrorAborts(t *testing.T) {
	comp := &countingComponent{failAt: 3}
	called := false
	b := Benchmark{Component: comp.render, Samples: 5, Type: Mount, OnComplete: func(BenchResults) { called = true }}
	_, err := b.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mount cycle 3")
	assert.False(t, called)
}

func TestBenchmark_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	comp := &countingComponent{}
	b := Benchmark{Component: comp.render, Samples: 5, Type: Mount}
	_, err := b.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, comp.renders)
}

func TestBenchmark_Timeout(t *testing.T) {
	slow := func(w io.Writer, p catalog.Props) error {
		time.Sleep(5 * time.Millisecond)
		return nil
	}
	b := Benchmark{Component: slow, Samples: 1000, Type: Mount, Timeout: 20 * time.Millisecond}
	_, err := b.Run(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestParseBenchmarkType(t *testing.T) {
	typ, err := ParseBenchmarkType("unmount")
	require.NoError(t, err)
	assert.Equal(t, Unmount, typ)

	_, err = ParseBenchmarkType("remount")
	assert.ErrorIs(t, err, ErrInvalidBenchmark)
}

func TestClearSamples(t *testing.T) {
	res := BenchResults{SampleCount: 2, Samples: samplesOf(1, 2)}
	res.ClearSamples()
	assert.Empty(t, res.Samples)
	assert.NotNil(t, res.Samples, "cleared samples serialize as an empty list")
	assert.Equal(t, 2, res.SampleCount)
}
