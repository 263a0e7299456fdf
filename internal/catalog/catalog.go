// internal/catalog/catalog.go
// Package catalog maps display names to JSON renderers and the props each
// renderer is benchmarked with.
package catalog

import (
	"bytes"
	"errors"
	"io"

	"github.com/mwiater/jsonviewbench/internal/dataset"
)

// DefaultName is the entry used when a lookup misses.
const DefaultName = "JsonView"

// Props is the input handed to a Component on every render.
type Props struct {
	// Data is the decoded JSON value to render.
	Data any
	// Expanded reports whether the node at keyPath is rendered expanded.
	Expanded func(keyPath []string) bool
	// ShouldExpandNode reports whether a collection at keyPath and level is expanded.
	ShouldExpandNode func(keyPath []string, level int) bool
	// CollectionLimit caps the number of items rendered per collection; 0 means no limit.
	CollectionLimit int
	// DisplayDataTypes adds the value type next to each leaf.
	DisplayDataTypes bool
	// Indent is the indentation unit for text renderers; empty means two spaces.
	Indent string
}

func (p Props) indent() string {
	if p.Indent == "" {
		return "  "
	}
	return p.Indent
}

// Component renders props into w.
type Component func(w io.Writer, p Props) error

// Entry is one catalog row.
type Entry struct {
	Name         string
	Description  string
	Component    Component
	PropsBuilder func(array bool) Props
}

// Catalog is an ordered lookup table of entries with a fixed fallback.
type Catalog struct {
	entries  map[string]Entry
	order    []string
	fallback Entry
}

// New returns an empty catalog whose lookups fall back to fallback.
func New(fallback Entry) *Catalog {
	return &Catalog{
		entries:  make(map[string]Entry),
		fallback: fallback,
	}
}

// Register adds or replaces an entry. Replacing keeps the original position.
func (c *Catalog) Register(e Entry) {
	if _, exists := c.entries[e.Name]; !exists {
		c.order = append(c.order, e.Name)
	}
	c.entries[e.Name] = e
}

// Lookup returns the entry registered under name. When there is none it
// returns the fallback entry and false.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	if e, ok := c.entries[name]; ok {
		return e, true
	}
	return c.fallback, false
}

// Names lists entry names in registration order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of registered entries.
func (c *Catalog) Len() int { return len(c.order) }

// Surface is the target a Component is mounted into.
type Surface struct {
	component Component
	buf       *bytes.Buffer
}

// ErrNotMounted is returned when updating a surface that was unmounted.
var ErrNotMounted = errors.New("surface is not mounted")

// Mount renders c with p into a fresh surface.
func Mount(c Component, p Props) (*Surface, error) {
	s := &Surface{component: c, buf: new(bytes.Buffer)}
	if err := c(s.buf, p); err != nil {
		return nil, err
	}
	return s, nil
}

// Update forces a full re-render with p.
func (s *Surface) Update(p Props) error {
	if s.buf == nil {
		return ErrNotMounted
	}
	s.buf.Reset()
	return s.component(s.buf, p)
}

// Unmount drops the rendered output.
func (s *Surface) Unmount() {
	s.buf = nil
}

// Mounted reports whether the surface still holds output.
func (s *Surface) Mounted() bool { return s.buf != nil }

// String returns the rendered output, or "" once unmounted.
func (s *Surface) String() string {
	if s.buf == nil {
		return ""
	}
	return s.buf.String()
}

func expandAll([]string) bool { return true }

func expandAllNodes([]string, int) bool { return true }

// dataProps is the props builder shared by renderers that only take data.
func dataProps(set *dataset.Set) func(bool) Props {
	return func(array bool) Props {
		return Props{Data: set.Pick(array)}
	}
}

// Default builds the standard catalog over set.
func Default(set *dataset.Set) *Catalog {
	jsonView := Entry{
		Name:         DefaultName,
		Description:  "encoding/json indented output",
		Component:    RenderJSON,
		PropsBuilder: dataProps(set),
	}
	c := New(jsonView)

	c.Register(jsonView)
	c.Register(Entry{
		Name:         "JSONPretty",
		Description:  "goccy/go-json indented output",
		Component:    RenderGoJSON,
		PropsBuilder: dataProps(set),
	})
	c.Register(Entry{
		Name:        "Inspector",
		Description: "json-iterator output, every node expanded",
		Component:   RenderInspector,
		PropsBuilder: func(array bool) Props {
			return Props{Data: set.Pick(array), Expanded: expandAll}
		},
	})
	c.Register(Entry{
		Name:        "JSONTree",
		Description: "lipgloss tree, every node expanded",
		Component:   RenderTree,
		PropsBuilder: func(array bool) Props {
			return Props{Data: set.Pick(array), ShouldExpandNode: expandAllNodes, CollectionLimit: 20_000}
		},
	})
	c.Register(Entry{
		Name:         "YAMLView",
		Description:  "yaml.v3 document",
		Component:    RenderYAML,
		PropsBuilder: dataProps(set),
	})
	c.Register(Entry{
		Name:        "TableView",
		Description: "tablewriter path/value table",
		Component:   RenderTable,
		PropsBuilder: func(array bool) Props {
			return Props{Data: set.Pick(array), CollectionLimit: 20_000}
		},
	})
	c.Register(Entry{
		Name:        "PrettyPrint",
		Description: "k0kubun/pp Go value dump",
		Component:   RenderPretty,
		PropsBuilder: func(array bool) Props {
			return Props{Data: set.Pick(array), DisplayDataTypes: false}
		},
	})
	return c
}
