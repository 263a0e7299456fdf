// cli/cli.go
package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/mwiater/jsonviewbench/internal/harness"
)

// model is the Bubble Tea model for the benchmark form. All session state is
// mutated from Update only; runs execute inside a tea.Cmd on a snapshot of
// the selection.
type model struct {
	// Form state, selection and report.
	session *harness.Session
	// Log sink; the terminal belongs to the UI.
	log logrus.FieldLogger

	// Form controls in display order.
	fields []selectField
	// Index of the focused control.
	focus int

	// Indicates a run is in progress.
	isRunning bool
	// Last error, shown until the next successful action.
	err error
	// Most recent finished run.
	last *harness.Outcome

	// Scrollable report.
	viewport viewport.Model
	// Spinner shown while running.
	spinner spinner.Model

	// Current width and height of the terminal.
	width, height int
	// Start of the current run.
	runStartTime time.Time
}

// headerHeight is the number of lines above the report viewport.
const headerHeight = 6

// initialModel builds the form from the session's current selection.
func initialModel(session *harness.Session, log logrus.FieldLogger) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	sel := session.Selection()
	types := make([]string, len(harness.BenchmarkTypes))
	for i, t := range harness.BenchmarkTypes {
		types[i] = string(t)
	}

	fields := []selectField{
		newSelectField(fieldType, "Test Type", types, string(sel.Type)),
		newSelectField(fieldSamples, "Samples Count", intOptions(harness.SampleCounts), strconv.Itoa(sel.SampleCount)),
		newSelectField(fieldData, "Test Data", append([]string(nil), harness.DataTypes...), sel.DataType),
		newSelectField(fieldRenderer, "Test Target Library", session.Catalog().Names(), sel.Component),
	}

	return &model{
		session:  session,
		log:      log,
		fields:   fields,
		viewport: viewport.New(100, 5),
		spinner:  s,
	}
}

// benchDoneMsg is sent when a run finished.
type benchDoneMsg struct{ outcome harness.Outcome }

// benchErr is sent when a run failed.
type benchErr error

// tickMsg refreshes the elapsed timer while a run is in progress.
type tickMsg time.Time

// runBenchmarkCmd executes plan off the UI goroutine.
func runBenchmarkCmd(plan harness.Plan) tea.Cmd {
	return func() tea.Msg {
		o, err := plan.Execute(context.Background())
		if err != nil {
			return benchErr(err)
		}
		return benchDoneMsg{outcome: o}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the spinner.
func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles keys, window resizes and run completion.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k", "shift+tab":
			m.focus = (m.focus - 1 + len(m.fields)) % len(m.fields)
			return m, nil
		case "down", "j", "tab":
			m.focus = (m.focus + 1) % len(m.fields)
			return m, nil
		case "left", "h":
			if !m.isRunning {
				m.fields[m.focus].prev()
				m.applyField(m.fields[m.focus])
			}
			return m, nil
		case "right", "l":
			if !m.isRunning {
				m.fields[m.focus].next()
				m.applyField(m.fields[m.focus])
			}
			return m, nil
		case "enter", "r":
			if m.isRunning {
				return m, nil
			}
			plan := m.session.Plan()
			m.isRunning = true
			m.err = nil
			m.runStartTime = time.Now()
			m.log.WithFields(logrus.Fields{
				"component": plan.Resolved,
				"type":      plan.Benchmark.Type,
				"samples":   plan.Benchmark.Samples,
			}).Debug("run requested")
			return m, tea.Batch(m.spinner.Tick, runBenchmarkCmd(plan), tickCmd())
		case "x":
			m.session.Reset()
			m.last = nil
			m.err = nil
			m.refreshReport()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight, 1)
		m.refreshReport()

	case benchDoneMsg:
		m.isRunning = false
		if err := m.session.Record(msg.outcome); err != nil {
			m.err = err
			return m, nil
		}
		o := msg.outcome
		m.last = &o
		m.refreshReport()
		return m, nil

	case benchErr:
		m.isRunning = false
		m.err = msg
		m.log.WithError(msg).Error("benchmark failed")
		return m, nil

	case tickMsg:
		if m.isRunning {
			return m, tickCmd()
		}
		return m, nil

	case spinner.TickMsg:
		if m.isRunning {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// applyField pushes a changed control into the session.
func (m *model) applyField(f selectField) {
	var err error
	switch f.id {
	case fieldType:
		err = m.session.SetType(f.value())
	case fieldSamples:
		var n int
		n, err = strconv.Atoi(f.value())
		if err == nil {
			err = m.session.SetSampleCount(n)
		}
	case fieldData:
		err = m.session.SetDataType(f.value())
	case fieldRenderer:
		m.session.SetComponent(f.value())
	}
	m.err = err
}

func (m *model) refreshReport() {
	m.viewport.SetContent(m.session.Report())
	m.viewport.GotoBottom()
}

// View renders the form, the status line and the report.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var b strings.Builder
	title := lipgloss.NewStyle().Bold(true).Render("JSON renderer benchmark")
	b.WriteString(title + "\n\n")

	controls := make([]string, len(m.fields))
	for i := range m.fields {
		controls[i] = m.fields[i].render(i == m.focus)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(controls, "  ")...) + "\n")

	help := lipgloss.NewStyle().Faint(true).Render("↑/↓ field • ←/→ change • r run • x reset • q quit")
	b.WriteString(help + "\n")
	b.WriteString(m.statusLine() + "\n\n")
	b.WriteString(m.viewport.View())
	return b.String()
}

func (m *model) statusLine() string {
	switch {
	case m.isRunning:
		timer := fmt.Sprintf("%.1f", time.Since(m.runStartTime).Seconds())
		sel := m.session.Selection()
		return fmt.Sprintf("%s Running %s %s × %d... %ss", m.spinner.View(), sel.Component, sel.Type, sel.SampleCount, timer)
	case m.err != nil:
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	case m.last != nil:
		return formatSummary(*m.last)
	default:
		return lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("%d run(s) in report", m.session.Runs()))
	}
}

// formatSummary renders the last run's percentiles on one line.
func formatSummary(o harness.Outcome) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	s := o.Summary
	return style.Render(fmt.Sprintf(
		">>> %s [p50: %.3fms] [p70: %.3fms] [p90: %.3fms] [p95: %.3fms] [p99: %.3fms] [run: %.0fms]",
		o.Component, s.P50, s.P70, s.P90, s.P95, s.P99, o.Results.RunTime,
	))
}

func joinWithGap(items []string, gap string) []string {
	out := make([]string, 0, len(items)*2)
	for i, it := range items {
		if i > 0 {
			out = append(out, gap)
		}
		out = append(out, it)
	}
	return out
}

// StartGUI runs the interactive benchmark form over session and blocks until
// the user quits.
func StartGUI(session *harness.Session, log logrus.FieldLogger) error {
	m := initialModel(session, log)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
