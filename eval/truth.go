package eval

import "encoding/json"

// Truthy coerces an evaluated result to a logical pass/fail: nil, false,
// empty strings, zero numbers and empty collections are falsy, everything
// else truthy. Constraint validity is defined in these terms.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case []any:
		return len(t) != 0
	case []string:
		return len(t) != 0
	case map[string]any:
		return len(t) != 0
	default:
		return true
	}
}
