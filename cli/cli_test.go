// cli/cli_test.go
package cli

import (
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mwiater/jsonviewbench/internal/catalog"
	"github.com/mwiater/jsonviewbench/internal/harness"
	"github.com/mwiater/jsonviewbench/internal/logging"
)

func testSession() *harness.Session {
	render := func(w io.Writer, p catalog.Props) error {
		_, err := io.WriteString(w, "ok")
		return err
	}
	def := catalog.Entry{
		Name:         catalog.DefaultName,
		Component:    render,
		PropsBuilder: func(bool) catalog.Props { return catalog.Props{} },
	}
	c := catalog.New(def)
	c.Register(def)
	c.Register(catalog.Entry{Name: "JSONTree", Component: render, PropsBuilder: def.PropsBuilder})
	return harness.NewSession(c, harness.Selection{
		Type:        harness.Mount,
		SampleCount: 10,
		DataType:    harness.DataArray,
		Component:   catalog.DefaultName,
	}, logging.Discard())
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m *model, msg tea.Msg) (*model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(*model), cmd
}

func TestInitialModel_ReflectsSelection(t *testing.T) {
	m := initialModel(testSession(), logging.Discard())
	want := []string{"mount", "10", "array", catalog.DefaultName}
	for i, f := range m.fields {
		if f.value() != want[i] {
			t.Errorf("field %q: expected %q, got %q", f.label, want[i], f.value())
		}
	}
}

func TestUpdate_Quit(t *testing.T) {
	m := initialModel(testSession(), logging.Discard())
	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("Expected a quit command, but got nil")
	}
	if _, cmd := m.Update(key("ctrl+c")); cmd == nil {
		t.Error("Expected a quit command, but got nil")
	}
}

func TestUpdate_ChangeFieldsUpdatesSession(t *testing.T) {
	s := testSession()
	m := initialModel(s, logging.Discard())

	// Test Type: mount -> update
	m, _ = update(t, m, key("right"))
	if got := s.Selection().Type; got != harness.Update {
		t.Fatalf("expected update type, got %q", got)
	}

	// Samples Count: 10 -> 200 (wraps backwards)
	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("left"))
	if got := s.Selection().SampleCount; got != 200 {
		t.Fatalf("expected 200 samples, got %d", got)
	}

	// Test Data: array -> object
	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("right"))
	if got := s.Selection().DataType; got != harness.DataObject {
		t.Fatalf("expected object data, got %q", got)
	}

	// Test Target Library: JsonView -> JSONTree
	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("right"))
	if got := s.Selection().Component; got != "JSONTree" {
		t.Fatalf("expected JSONTree, got %q", got)
	}

	// focus wraps around
	m, _ = update(t, m, key("down"))
	if m.focus != 0 {
		t.Fatalf("expected focus to wrap to 0, got %d", m.focus)
	}
	m, _ = update(t, m, key("up"))
	if m.focus != len(m.fields)-1 {
		t.Fatalf("expected focus to wrap to last field, got %d", m.focus)
	}
}

func TestUpdate_RunAndReset(t *testing.T) {
	s := testSession()
	m := initialModel(s, logging.Discard())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m, cmd := update(t, m, key("r"))
	if !m.isRunning || cmd == nil {
		t.Fatalf("expected a run to start; running=%v", m.isRunning)
	}

	// A second request while running is ignored.
	_, cmd = update(t, m, key("enter"))
	if cmd != nil {
		t.Fatal("expected no command while a run is in progress")
	}

	// Execute the run the way the program would and deliver the result.
	msg := runBenchmarkCmd(s.Plan())()
	done, ok := msg.(benchDoneMsg)
	if !ok {
		t.Fatalf("expected benchDoneMsg, got %T", msg)
	}
	m, _ = update(t, m, done)
	if m.isRunning {
		t.Fatal("expected run to be finished")
	}
	if s.Runs() != 1 || !strings.HasPrefix(s.Report(), "\n\n"+catalog.DefaultName+"\n") {
		t.Fatalf("expected one report block, got %q", s.Report())
	}
	if !strings.Contains(m.View(), ">>> "+catalog.DefaultName) {
		t.Fatalf("expected summary line in view, got %s", m.View())
	}

	m, _ = update(t, m, key("x"))
	if s.Report() != "" || m.last != nil {
		t.Fatalf("expected reset to clear the report, got %q", s.Report())
	}
}

func TestUpdate_RunError(t *testing.T) {
	m := initialModel(testSession(), logging.Discard())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m.isRunning = true

	m, _ = update(t, m, benchErr(errors.New("render failed")))
	if m.isRunning {
		t.Fatal("expected run to stop on error")
	}
	if !strings.Contains(m.View(), "Error: render failed") {
		t.Fatalf("expected error in view, got %s", m.View())
	}
}

func TestView(t *testing.T) {
	m := initialModel(testSession(), logging.Discard())

	if view := m.View(); view != "Initializing..." {
		t.Errorf("Expected view to be 'Initializing...', got '%s'", view)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 30})
	view := m.View()
	for _, want := range []string{"Test Type", "Samples Count", "Test Data", "Test Target Library", "0 run(s) in report"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q, got '%s'", want, view)
		}
	}
}

func TestSelectField(t *testing.T) {
	f := newSelectField(fieldSamples, "Samples Count", intOptions(harness.SampleCounts), "75")
	if f.value() != "75" || len(f.options) != 6 {
		t.Fatalf("expected unknown initial value to be appended, got %q of %v", f.value(), f.options)
	}
	f.next()
	if f.value() != "10" {
		t.Fatalf("expected wrap to first option, got %q", f.value())
	}
	f.prev()
	if f.value() != "75" {
		t.Fatalf("expected wrap to last option, got %q", f.value())
	}
}
