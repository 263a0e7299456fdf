// cli/form.go
package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// fieldID identifies a form control.
type fieldID int

const (
	fieldType fieldID = iota
	fieldSamples
	fieldData
	fieldRenderer
)

// selectField is a single-choice control cycled with left/right.
type selectField struct {
	id      fieldID
	label   string
	options []string
	index   int
}

func newSelectField(id fieldID, label string, options []string, initial string) selectField {
	f := selectField{id: id, label: label, options: options}
	f.set(initial)
	return f
}

// value returns the selected option.
func (f *selectField) value() string {
	if len(f.options) == 0 {
		return ""
	}
	return f.options[f.index]
}

// set selects v, appending it when it is not one of the options so a
// configured value is never silently replaced.
func (f *selectField) set(v string) {
	for i, o := range f.options {
		if o == v {
			f.index = i
			return
		}
	}
	if v == "" {
		return
	}
	f.options = append(f.options, v)
	f.index = len(f.options) - 1
}

func (f *selectField) next() {
	if len(f.options) > 0 {
		f.index = (f.index + 1) % len(f.options)
	}
}

func (f *selectField) prev() {
	if len(f.options) > 0 {
		f.index = (f.index - 1 + len(f.options)) % len(f.options)
	}
}

func intOptions(values []int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.Itoa(v)
	}
	return out
}

var (
	labelStyle   = lipgloss.NewStyle().Faint(true)
	valueStyle   = lipgloss.NewStyle().Padding(0, 1)
	focusedStyle = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
)

// render draws the field as "Label < value >".
func (f *selectField) render(focused bool) string {
	style := valueStyle
	if focused {
		style = focusedStyle
	}
	var b strings.Builder
	b.WriteString(labelStyle.Render(f.label + " "))
	b.WriteString(style.Render("‹ " + f.value() + " ›"))
	return b.String()
}
