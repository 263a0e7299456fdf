// internal/dataset/dataset.go
// Package dataset provides the two fixed payloads every renderer is
// benchmarked against: a deeply nested object and a large array of records.
//
// Values use the shapes produced by decoding JSON into an empty interface
// (map[string]any, []any, float64, string, bool, nil) so the renderers see
// exactly what they would see after json.Unmarshal.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
)

// Options controls the size of the generated datasets.
type Options struct {
	// ObjectDepth is the number of nested levels below the root object.
	ObjectDepth int `json:"object_depth"`
	// ObjectFanout is the number of child objects per level.
	ObjectFanout int `json:"object_fanout"`
	// ArrayLength is the number of records in the array dataset.
	ArrayLength int `json:"array_length"`
}

// DefaultOptions are the sizes used when nothing is configured.
var DefaultOptions = Options{
	ObjectDepth:  4,
	ObjectFanout: 6,
	ArrayLength:  5000,
}

// Set holds both datasets.
type Set struct {
	Object map[string]any
	Array  []any
}

// Pick returns the array dataset when array is true and the nested object
// otherwise.
func (s *Set) Pick(array bool) any {
	if array {
		return s.Array
	}
	return s.Object
}

var (
	defaultOnce sync.Once
	defaultSet  *Set
)

// Default returns the datasets generated with DefaultOptions. They are built
// once and shared; callers must treat them as read-only.
func Default() *Set {
	defaultOnce.Do(func() {
		defaultSet = Generate(DefaultOptions)
	})
	return defaultSet
}

// Generate builds a deterministic Set. Zero or negative sizes fall back to
// DefaultOptions.
func Generate(opts Options) *Set {
	if opts.ObjectDepth <= 0 {
		opts.ObjectDepth = DefaultOptions.ObjectDepth
	}
	if opts.ObjectFanout <= 0 {
		opts.ObjectFanout = DefaultOptions.ObjectFanout
	}
	if opts.ArrayLength <= 0 {
		opts.ArrayLength = DefaultOptions.ArrayLength
	}

	g := &generator{}
	return &Set{
		Object: g.object(opts.ObjectDepth, opts.ObjectFanout, "root"),
		Array:  g.array(opts.ArrayLength),
	}
}

// Load replaces either side of the set with the contents of JSON files.
// Empty paths leave the corresponding dataset untouched. The object file must
// decode to a JSON object and the array file to a JSON array.
func (s *Set) Load(objectFile, arrayFile string) error {
	if objectFile != "" {
		v, err := LoadFile(objectFile)
		if err != nil {
			return err
		}
		obj, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: expected a JSON object, got %T", objectFile, v)
		}
		s.Object = obj
	}
	if arrayFile != "" {
		v, err := LoadFile(arrayFile)
		if err != nil {
			return err
		}
		arr, ok := v.([]any)
		if !ok {
			return fmt.Errorf("%s: expected a JSON array, got %T", arrayFile, v)
		}
		s.Array = arr
	}
	return nil
}

// LoadFile decodes an arbitrary JSON document from path.
func LoadFile(path string) (any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read dataset file: %w", err)
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("could not parse dataset JSON %s: %w", path, err)
	}
	return v, nil
}

// generator hands out a monotonically increasing sequence used to derive
// stable ids and values.
type generator struct {
	seq int
}

func (g *generator) next() int {
	g.seq++
	return g.seq
}

// id returns a name-based UUID so regenerated datasets are byte-identical.
func (g *generator) id(kind string, n int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s/%d", kind, n))).String()
}

func (g *generator) object(depth, fanout int, name string) map[string]any {
	n := g.next()
	obj := map[string]any{
		"id":       g.id("node", n),
		"name":     name,
		"index":    float64(n),
		"active":   n%2 == 0,
		"score":    float64(n%97) / 7,
		"comment":  nil,
		"tags":     []any{"level-" + fmt.Sprint(depth), fmt.Sprintf("n%d", n%10)},
		"metadata": map[string]any{"created": fmt.Sprintf("2024-01-%02dT00:00:00Z", n%28+1), "revision": float64(n % 5)},
	}
	if depth == 0 {
		return obj
	}
	children := make(map[string]any, fanout)
	for i := 0; i < fanout; i++ {
		key := fmt.Sprintf("%s_%d", name, i)
		children[key] = g.object(depth-1, fanout, key)
	}
	obj["children"] = children
	return obj
}

func (g *generator) array(length int) []any {
	out := make([]any, length)
	for i := range out {
		n := g.next()
		out[i] = map[string]any{
			"_id":      g.id("record", i),
			"index":    float64(i),
			"guid":     g.id("guid", n),
			"isActive": i%3 != 0,
			"balance":  fmt.Sprintf("$%d.%02d", 1000+n%9000, n%100),
			"age":      float64(20 + i%50),
			"eyeColor": []string{"blue", "brown", "green"}[i%3],
			"name":     fmt.Sprintf("Person %d", i),
			"email":    fmt.Sprintf("person%d@example.com", i),
			"latitude": float64(i%180) - 90,
			"friends":  []any{float64(i + 1), float64(i + 2)},
			"greeting": nil,
		}
	}
	return out
}
