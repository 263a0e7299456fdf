// internal/catalog/renderers.go
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"
	gojson "github.com/goccy/go-json"
	jsoniter "github.com/json-iterator/go"
	"github.com/k0kubun/pp"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

var iter = jsoniter.ConfigCompatibleWithStandardLibrary

// RenderJSON writes indented JSON with encoding/json.
func RenderJSON(w io.Writer, p Props) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", p.indent())
	return enc.Encode(p.Data)
}

// RenderGoJSON writes indented JSON with goccy/go-json.
func RenderGoJSON(w io.Writer, p Props) error {
	b, err := gojson.MarshalIndent(p.Data, "", p.indent())
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

// RenderInspector writes JSON with json-iterator. The document is indented
// when the root is expanded and compact otherwise.
func RenderInspector(w io.Writer, p Props) error {
	var (
		b   []byte
		err error
	)
	if p.Expanded == nil || p.Expanded(nil) {
		b, err = iter.MarshalIndent(p.Data, "", p.indent())
	} else {
		b, err = iter.Marshal(p.Data)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

// RenderYAML writes the data as a YAML document.
func RenderYAML(w io.Writer, p Props) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(len(p.indent()))
	if err := enc.Encode(p.Data); err != nil {
		return err
	}
	return enc.Close()
}

// RenderPretty dumps the data with k0kubun/pp.
func RenderPretty(w io.Writer, p Props) error {
	_, err := pp.Fprint(w, p.Data)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// RenderTree draws the data as a lipgloss tree. Collections are expanded
// when ShouldExpandNode allows it (all of them when it is nil) and truncated
// after CollectionLimit items.
func RenderTree(w io.Writer, p Props) error {
	root := tree.Root(rootLabel(p.Data))
	addBranches(root, p.Data, nil, 0, p)
	_, err := io.WriteString(w, root.String()+"\n")
	return err
}

func rootLabel(v any) string {
	switch val := v.(type) {
	case map[string]any:
		return fmt.Sprintf("root {%d}", len(val))
	case []any:
		return fmt.Sprintf("root [%d]", len(val))
	default:
		return "root"
	}
}

func addBranches(t *tree.Tree, v any, path []string, level int, p Props) {
	child := func(key string, value any) {
		keyPath := append(slices.Clip(path), key)
		switch value.(type) {
		case map[string]any, []any:
			sub := tree.Root(key + " " + collectionSize(value))
			if p.ShouldExpandNode == nil || p.ShouldExpandNode(keyPath, level+1) {
				addBranches(sub, value, keyPath, level+1, p)
			}
			t.Child(sub)
		default:
			t.Child(key + ": " + leaf(value, p.DisplayDataTypes))
		}
	}

	switch val := v.(type) {
	case map[string]any:
		for i, k := range slices.Sorted(maps.Keys(val)) {
			if p.CollectionLimit > 0 && i >= p.CollectionLimit {
				t.Child(fmt.Sprintf("… %d more", len(val)-i))
				break
			}
			child(k, val[k])
		}
	case []any:
		for i, e := range val {
			if p.CollectionLimit > 0 && i >= p.CollectionLimit {
				t.Child(fmt.Sprintf("… %d more", len(val)-i))
				break
			}
			child(strconv.Itoa(i), e)
		}
	}
}

func collectionSize(v any) string {
	switch val := v.(type) {
	case map[string]any:
		return fmt.Sprintf("{%d}", len(val))
	case []any:
		return fmt.Sprintf("[%d]", len(val))
	}
	return ""
}

// scalar formats a leaf value the way it would appear in JSON, along with
// its JSON type name.
func scalar(v any) (text, kind string) {
	switch val := v.(type) {
	case nil:
		return "null", "null"
	case string:
		return strconv.Quote(val), "string"
	case bool:
		return strconv.FormatBool(val), "bool"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), "number"
	default:
		return fmt.Sprint(val), fmt.Sprintf("%T", val)
	}
}

func leaf(v any, withType bool) string {
	text, kind := scalar(v)
	if withType {
		return kind + " " + text
	}
	return text
}

// RenderTable flattens the data into one row per leaf, keyed by its
// dotted path.
func RenderTable(w io.Writer, p Props) error {
	table := tablewriter.NewWriter(w)
	header := []string{"Path", "Value"}
	if p.DisplayDataTypes {
		header = []string{"Path", "Type", "Value"}
	}
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)

	var walk func(prefix []string, v any)
	walk = func(prefix []string, v any) {
		switch val := v.(type) {
		case map[string]any:
			for i, k := range slices.Sorted(maps.Keys(val)) {
				if p.CollectionLimit > 0 && i >= p.CollectionLimit {
					break
				}
				walk(append(slices.Clip(prefix), k), val[k])
			}
		case []any:
			for i, e := range val {
				if p.CollectionLimit > 0 && i >= p.CollectionLimit {
					break
				}
				walk(append(slices.Clip(prefix), strconv.Itoa(i)), e)
			}
		default:
			path := strings.Join(prefix, ".")
			if path == "" {
				path = "$"
			}
			text, kind := scalar(val)
			if p.DisplayDataTypes {
				table.Append([]string{path, kind, text})
			} else {
				table.Append([]string{path, text})
			}
		}
	}
	walk(nil, p.Data)
	table.Render()
	return nil
}
