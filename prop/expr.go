package prop

import (
	"strconv"
	"strings"
)

// Lit wraps an arbitrary payload in a literal expression. Evaluating a
// literal yields the payload unchanged.
func Lit(v any) *Property {
	return &Property{ID: "literal", Type: LiteralType, Value: v}
}

// Ref builds a reference expression. It accepts either a single
// dot-delimited path ("self.value") or explicit ordered segments
// ("self", "value"); both normalize to the same segment list.
func Ref(segments ...string) *Property {
	var segs []string
	if len(segments) == 1 {
		segs = strings.Split(segments[0], ".")
	} else {
		segs = make([]string, len(segments))
		copy(segs, segments)
	}
	return &Property{ID: "reference", Type: ReferenceType, Value: segs}
}

// Call builds an operator-call expression naming an operator in the
// registry. Arguments are stored in order as children arg0..argN-1; zero
// arguments yields an empty children map.
func Call(name string, args ...*Property) *Property {
	p := &Property{ID: "call", Type: CallType, Value: name, Children: NewMap()}
	for i, a := range args {
		p.Children.Set(ArgKey(i), a)
	}
	return p
}

// Constraint wraps a boolean-valued expression for attachment under a
// Property's constraints map.
func Constraint(id string, expr *Property) *Property {
	return &Property{ID: id, Type: ConstraintType, Value: expr}
}

// ArgKey returns the child key of the i-th call argument.
func ArgKey(i int) string {
	return "arg" + strconv.Itoa(i)
}

// Args returns a call expression's arguments in numeric order. Non-call
// properties and calls with gaps yield the contiguous prefix arg0..argK.
func Args(p *Property) []*Property {
	if p == nil {
		return nil
	}
	var res []*Property
	for i := 0; ; i++ {
		a := p.Children.Get(ArgKey(i))
		if a == nil {
			return res
		}
		res = append(res, a)
	}
}

// RefSegments returns a reference expression's normalized path segments.
func RefSegments(p *Property) []string {
	if p == nil {
		return nil
	}
	segs, _ := p.Value.([]string)
	return segs
}

// CallName returns the operator name of a call expression.
func CallName(p *Property) string {
	if p == nil {
		return ""
	}
	name, _ := p.Value.(string)
	return name
}
