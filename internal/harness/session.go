// harness/session.go
// Package: harness
package harness

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mwiater/jsonviewbench/internal/catalog"
)

// Session is the state behind the benchmark form: the current selection,
// the component catalog and the accumulated report.
//
// A Session is not safe for concurrent use. Interactive callers take a Plan
// on their own goroutine, execute it elsewhere and hand the Outcome back
// through Record.
type Session struct {
	catalog *catalog.Catalog
	log     logrus.FieldLogger

	benchType   BenchmarkType
	sampleCount int
	dataType    string
	component   string
	timeout     time.Duration

	report Report
}

// Selection is a snapshot of the form values.
type Selection struct {
	Type        BenchmarkType
	SampleCount int
	DataType    string
	Component   string
	Timeout     time.Duration
}

// DefaultSelection mirrors the initial state of the form.
var DefaultSelection = Selection{
	Type:        Mount,
	SampleCount: 50,
	DataType:    DataArray,
	Component:   catalog.DefaultName,
	Timeout:     DefaultTimeout,
}

// NewSession returns a session over cat starting from sel. Invalid fields in
// sel fall back to DefaultSelection.
func NewSession(cat *catalog.Catalog, sel Selection, log logrus.FieldLogger) *Session {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		log = l
	}
	s := &Session{catalog: cat, log: log}
	s.apply(DefaultSelection)
	if err := s.SetType(string(sel.Type)); err != nil {
		log.WithError(err).Warn("keeping default benchmark type")
	}
	if err := s.SetSampleCount(sel.SampleCount); err != nil {
		log.WithError(err).Warn("keeping default sample count")
	}
	if err := s.SetDataType(sel.DataType); err != nil {
		log.WithError(err).Warn("keeping default data type")
	}
	if sel.Component != "" {
		s.SetComponent(sel.Component)
	}
	if sel.Timeout > 0 {
		s.timeout = sel.Timeout
	}
	return s
}

func (s *Session) apply(sel Selection) {
	s.benchType = sel.Type
	s.sampleCount = sel.SampleCount
	s.dataType = sel.DataType
	s.component = sel.Component
	s.timeout = sel.Timeout
}

// Selection returns the current form values.
func (s *Session) Selection() Selection {
	return Selection{
		Type:        s.benchType,
		SampleCount: s.sampleCount,
		DataType:    s.dataType,
		Component:   s.component,
		Timeout:     s.timeout,
	}
}

// Catalog returns the catalog the session resolves components from.
func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

// SetType selects the timed phase.
func (s *Session) SetType(name string) error {
	t, err := ParseBenchmarkType(name)
	if err != nil {
		return err
	}
	s.benchType = t
	return nil
}

// SetSampleCount sets the number of cycles per run.
func (s *Session) SetSampleCount(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: samples must be positive, got %d", ErrInvalidBenchmark, n)
	}
	s.sampleCount = n
	return nil
}

// SetDataType selects the dataset: "object" or "array".
func (s *Session) SetDataType(name string) error {
	if name != DataObject && name != DataArray {
		return fmt.Errorf("%w: unknown data type %q (want object or array)", ErrInvalidBenchmark, name)
	}
	s.dataType = name
	return nil
}

// SetComponent selects the component by catalog name. Unknown names are
// kept and resolved to the default entry when a run starts.
func (s *Session) SetComponent(name string) {
	s.component = name
}

// Plan is an immutable, ready to run benchmark built from a selection.
type Plan struct {
	// Component is the selected name, which labels the report block even
	// when it resolved to the default entry.
	Component string
	Resolved  string
	Benchmark Benchmark
}

// Outcome is a finished run: its results with the samples already dropped,
// and its percentile summary.
type Outcome struct {
	Component string
	Results   BenchResults
	Summary   PercentileSummary
}

// Plan resolves the current selection against the catalog.
func (s *Session) Plan() Plan {
	entry, ok := s.catalog.Lookup(s.component)
	if !ok {
		s.log.WithField("component", s.component).Debugf("unknown component, using %s", entry.Name)
	}
	return Plan{
		Component: s.component,
		Resolved:  entry.Name,
		Benchmark: Benchmark{
			Component: entry.Component,
			Props:     entry.PropsBuilder(s.dataType == DataArray),
			Samples:   s.sampleCount,
			Timeout:   s.timeout,
			Type:      s.benchType,
		},
	}
}

// Execute runs the plan, summarizes the samples and drops them. It touches no
// session state, so it may run on any goroutine.
func (p Plan) Execute(ctx context.Context) (Outcome, error) {
	var (
		out    Outcome
		sumErr error
	)
	b := p.Benchmark
	b.OnComplete = func(res BenchResults) {
		summary, err := Summarize(res.Samples)
		res.ClearSamples()
		if err != nil {
			sumErr = err
			return
		}
		out = Outcome{Component: p.Component, Results: res, Summary: summary}
	}
	if _, err := b.Run(ctx); err != nil {
		return Outcome{}, err
	}
	if sumErr != nil {
		return Outcome{}, sumErr
	}
	return out, nil
}

// Record appends a finished run to the report.
func (s *Session) Record(o Outcome) error {
	if err := s.report.Append(o.Component, o.Results, o.Summary); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"component": o.Component,
		"samples":   o.Results.SampleCount,
		"p50":       o.Summary.P50,
		"p99":       o.Summary.P99,
	}).Info("benchmark complete")
	return nil
}

// Start runs the current selection and records it.
func (s *Session) Start(ctx context.Context) (Outcome, error) {
	plan := s.Plan()
	s.log.WithFields(logrus.Fields{
		"component": plan.Resolved,
		"type":      plan.Benchmark.Type,
		"samples":   plan.Benchmark.Samples,
		"data":      s.dataType,
	}).Debug("starting benchmark")
	return s.finish(plan.Execute(ctx))
}

// finish records a successful run. Nothing is returned for a run that
// failed or could not be recorded.
func (s *Session) finish(o Outcome, err error) (Outcome, error) {
	if err != nil {
		return Outcome{}, err
	}
	if err := s.Record(o); err != nil {
		return Outcome{}, err
	}
	return o, nil
}

// Report returns the accumulated report text.
func (s *Session) Report() string { return s.report.String() }

// Runs returns how many runs the report holds.
func (s *Session) Runs() int { return s.report.Blocks() }

// Reset clears the report.
func (s *Session) Reset() {
	s.report.Reset()
}
