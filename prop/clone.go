package prop

// Clone deep-copies a Property tree. Type pointers are shared, never
// copied: identity into the meta-type graph is what the predicates test
// against, and copying it would recurse through the self-referential root.
// Expression values held in Value are cloned; reference segment slices are
// copied; all other payloads are carried over as-is.
func Clone(p *Property) *Property {
	if p == nil {
		return nil
	}
	res := &Property{
		ID:      p.ID,
		Type:    p.Type,
		Value:   cloneValue(p.Value),
		Default: cloneValue(p.Default),
	}
	res.Metadata = cloneMap(p.Metadata)
	res.Constraints = cloneMap(p.Constraints)
	res.Children = cloneMap(p.Children)
	return res
}

func cloneMap(m *Map) *Map {
	if m == nil {
		return nil
	}
	res := NewMap()
	m.Each(func(key string, p *Property) bool {
		res.Set(key, Clone(p))
		return true
	})
	return res
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case *Property:
		return Clone(t)
	case []string:
		res := make([]string, len(t))
		copy(res, t)
		return res
	case []any:
		res := make([]any, len(t))
		for i, e := range t {
			res[i] = cloneValue(e)
		}
		return res
	case map[string]any:
		res := make(map[string]any, len(t))
		for k, e := range t {
			res[k] = cloneValue(e)
		}
		return res
	default:
		return v
	}
}
