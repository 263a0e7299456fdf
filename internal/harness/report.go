// harness/report.go
// Package: harness
package harness

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Report accumulates one text block per completed run, in run order. It is
// never truncated; Reset is the only way to shrink it.
type Report struct {
	text   strings.Builder
	blocks int
}

// Append adds the block for one run: the component name, the runner's
// results as indented JSON, then the percentile summary as indented JSON.
func (r *Report) Append(component string, results BenchResults, summary PercentileSummary) error {
	block, err := FormatBlock(component, results, summary)
	if err != nil {
		return err
	}
	r.text.WriteString(block)
	r.blocks++
	return nil
}

// String returns the accumulated report.
func (r *Report) String() string { return r.text.String() }

// Blocks returns the number of runs in the report.
func (r *Report) Blocks() int { return r.blocks }

// Reset empties the report.
func (r *Report) Reset() {
	r.text.Reset()
	r.blocks = 0
}

// FormatBlock renders a single report block. Every block starts with a blank
// line so consecutive blocks stay visually separated.
func FormatBlock(component string, results BenchResults, summary PercentileSummary) (string, error) {
	res, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("could not encode results: %w", err)
	}
	extras, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("could not encode percentiles: %w", err)
	}
	return "\n\n" + component + "\n" + string(res) + "\n" + string(extras), nil
}
