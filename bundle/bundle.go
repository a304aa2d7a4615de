// Package bundle loads plain YAML or JSON documents, localized text
// bundles, demo forms, schema fragments, into data-only Property trees.
// Every mapping becomes a child subtree and every other value a literal
// payload; nothing in a bundle is executable.
package bundle

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/propkit/propkit/prop"
)

// FromYAML parses one YAML document into a Property tree rooted at id.
// Mapping keys keep their document order. The top level must be a mapping.
func FromYAML(data []byte, id string) (*prop.Property, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("bundle %q: %w", id, err)
	}
	ms, ok := v.(yaml.MapSlice)
	if !ok {
		return nil, fmt.Errorf("bundle %q: top level is %T, want a mapping", id, v)
	}
	return fromMapSlice(id, ms), nil
}

// FromJSON parses a JSON document into a Property tree rooted at id. JSON
// is a YAML subset, so the same order-preserving parser handles it.
func FromJSON(data []byte, id string) (*prop.Property, error) {
	return FromYAML(data, id)
}

// LoadFile reads a .yaml, .yml or .json file into a Property tree rooted
// at the file's base name.
func LoadFile(path string) (*prop.Property, error) {
	ext := filepath.Ext(path)
	switch ext {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("bundle %q: unsupported extension %q", path, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	id := filepath.Base(path)
	id = id[:len(id)-len(ext)]
	return FromYAML(data, id)
}

func fromMapSlice(id string, ms yaml.MapSlice) *prop.Property {
	p := prop.New(id)
	for _, item := range ms {
		key := fmt.Sprint(item.Key)
		if child, ok := item.Value.(yaml.MapSlice); ok {
			p.WithChild(fromMapSlice(key, child))
			continue
		}
		p.WithChild(prop.New(key).WithValue(plainValue(item.Value)))
	}
	return p
}

// plainValue strips parser-specific container types out of literal
// payloads so they serialize as ordinary JSON. Sequences stay literals;
// only mappings become subtrees, and only above the literal boundary.
func plainValue(v any) any {
	switch t := v.(type) {
	case yaml.MapSlice:
		m := make(map[string]any, len(t))
		for _, item := range t {
			m[fmt.Sprint(item.Key)] = plainValue(item.Value)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plainValue(e)
		}
		return out
	default:
		return v
	}
}
