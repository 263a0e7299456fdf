package catalog

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwiater/jsonviewbench/internal/dataset"
)

func smallSet() *dataset.Set {
	return dataset.Generate(dataset.Options{ObjectDepth: 2, ObjectFanout: 2, ArrayLength: 4})
}

func TestDefault_OrderAndNames(t *testing.T) {
	c := Default(smallSet())
	assert.Equal(t, []string{"JsonView", "JSONPretty", "Inspector", "JSONTree", "YAMLView", "TableView", "PrettyPrint"}, c.Names())
	assert.Equal(t, 7, c.Len())
}

func TestLookup_FallsBackToDefault(t *testing.T) {
	c := Default(smallSet())

	e, ok := c.Lookup("JSONTree")
	require.True(t, ok)
	assert.Equal(t, "JSONTree", e.Name)

	e, ok = c.Lookup("NoSuchViewer")
	assert.False(t, ok)
	assert.Equal(t, DefaultName, e.Name)
	require.NotNil(t, e.Component)
	require.NotNil(t, e.PropsBuilder)
}

func TestRegister_ReplaceKeepsPosition(t *testing.T) {
	c := New(Entry{Name: "fallback"})
	c.Register(Entry{Name: "a", Description: "first"})
	c.Register(Entry{Name: "b"})
	c.Register(Entry{Name: "a", Description: "second"})

	assert.Equal(t, []string{"a", "b"}, c.Names())
	e, _ := c.Lookup("a")
	assert.Equal(t, "second", e.Description)
}

func TestNames_ReturnsCopy(t *testing.T) {
	c := Default(smallSet())
	names := c.Names()
	names[0] = "mutated"
	assert.Equal(t, DefaultName, c.Names()[0])
}

func TestPropsBuilder_SelectsDataset(t *testing.T) {
	set := smallSet()
	c := Default(set)
	for _, name := range c.Names() {
		e, _ := c.Lookup(name)
		_, isArray := e.PropsBuilder(true).Data.([]any)
		assert.True(t, isArray, "%s: array props should carry the array dataset", name)
		_, isObject := e.PropsBuilder(false).Data.(map[string]any)
		assert.True(t, isObject, "%s: object props should carry the object dataset", name)
	}

	tree, _ := c.Lookup("JSONTree")
	p := tree.PropsBuilder(true)
	assert.Equal(t, 20_000, p.CollectionLimit)
	require.NotNil(t, p.ShouldExpandNode)
	assert.True(t, p.ShouldExpandNode([]string{"0"}, 1))
}

func TestEveryRenderer_RendersBothDatasets(t *testing.T) {
	c := Default(smallSet())
	for _, name := range c.Names() {
		e, _ := c.Lookup(name)
		for _, array := range []bool{false, true} {
			var buf bytes.Buffer
			err := e.Component(&buf, e.PropsBuilder(array))
			require.NoError(t, err, "%s (array=%v)", name, array)
			assert.NotEmpty(t, buf.String(), "%s (array=%v)", name, array)
		}
	}
}

func TestRenderTree_CollectionLimit(t *testing.T) {
	var buf bytes.Buffer
	data := []any{1.0, 2.0, 3.0, 4.0, 5.0}
	require.NoError(t, RenderTree(&buf, Props{Data: data, CollectionLimit: 2}))
	out := buf.String()
	assert.Contains(t, out, "root [5]")
	assert.Contains(t, out, "0: 1")
	assert.Contains(t, out, "1: 2")
	assert.NotContains(t, out, "2: 3")
	assert.Contains(t, out, "… 3 more")
}

func TestRenderTree_CollapsedNodes(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]any{"outer": map[string]any{"inner": "hidden"}}
	collapse := func([]string, int) bool { return false }
	require.NoError(t, RenderTree(&buf, Props{Data: data, ShouldExpandNode: collapse}))
	assert.Contains(t, buf.String(), "outer {1}")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestRenderTable_Paths(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]any{"a": map[string]any{"b": []any{true, nil}}}
	require.NoError(t, RenderTable(&buf, Props{Data: data, DisplayDataTypes: true}))
	out := buf.String()
	assert.Contains(t, out, "a.b.0")
	assert.Contains(t, out, "a.b.1")
	assert.Contains(t, out, "null")
	assert.Contains(t, out, "bool")
}

func TestRenderInspector_Collapsed(t *testing.T) {
	var buf bytes.Buffer
	collapse := func([]string) bool { return false }
	require.NoError(t, RenderInspector(&buf, Props{Data: map[string]any{"a": 1.0}, Expanded: collapse}))
	assert.Equal(t, "{\"a\":1}\n", buf.String())
}

func TestRenderJSON_Indent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderJSON(&buf, Props{Data: map[string]any{"a": 1.0}}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}

func TestSurface_Lifecycle(t *testing.T) {
	calls := 0
	comp := func(w io.Writer, p Props) error {
		calls++
		_, err := io.WriteString(w, strings.Repeat("x", calls))
		return err
	}

	s, err := Mount(comp, Props{})
	require.NoError(t, err)
	assert.True(t, s.Mounted())
	assert.Equal(t, "x", s.String())

	require.NoError(t, s.Update(Props{}))
	assert.Equal(t, "xx", s.String(), "update should replace the previous output")

	s.Unmount()
	assert.False(t, s.Mounted())
	assert.Equal(t, "", s.String())
	assert.ErrorIs(t, s.Update(Props{}), ErrNotMounted)
}

func TestMount_PropagatesRenderError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Mount(func(io.Writer, Props) error { return boom }, Props{})
	assert.ErrorIs(t, err, boom)
}
