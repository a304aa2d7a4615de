package ops

import (
	"cmp"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ToFloat coerces numeric payloads, including json.Number from decoded
// wire forms and numeric strings.
func ToFloat(v any) (float64, error) {
	switch t := v.(type) {
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case float64:
		return t, nil
	case json.Number:
		return t.Float64()
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", t)
		}
		return f, nil
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}

func ToInt(v any) (int64, error) {
	f, err := ToFloat(v)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

func ToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// normalizeNumber keeps arithmetic results integral when they are whole,
// so add(2,3) reads back 5 and not 5.0.
func normalizeNumber(f float64) any {
	if f == float64(int64(f)) {
		return int(f)
	}
	return f
}

// Compare orders two payloads: both-numeric compares numerically
// (booleans count as 0 and 1), everything else by string form. The result
// is 0, -1 or +1.
func Compare(a, b any) (int, error) {
	fa, errA := ToFloat(a)
	fb, errB := ToFloat(b)
	if errA == nil && errB == nil {
		return cmp.Compare(fa, fb), nil
	}
	return strings.Compare(ToString(a), ToString(b)), nil
}
