package eval

import (
	"fmt"
	"strings"

	"github.com/propkit/propkit/debug"
	"github.com/propkit/propkit/prop"
)

// Evaluate resolves an expression to its value. Literals return their
// payload unchanged. References walk their segment list against ctx.
// Operator calls gather arg0..argN-1 in order and dispatch to the named
// registry function, which decides itself when to evaluate each argument.
//
// Failure modes: ErrUnknownOperator for an absent operator name, ErrResolve
// for an unresolvable segment, ErrNotExpression for a non-expression
// Property, ErrDepth for runaway recursion. None is silently swallowed.
func Evaluate(expr *prop.Property, ctx *Context) (any, error) {
	if expr == nil {
		return nil, fmt.Errorf("%w: nil property", ErrNotExpression)
	}
	if ctx.Depth > MaxDepth {
		return nil, fmt.Errorf("%w (limit %d)", ErrDepth, MaxDepth)
	}
	switch {
	case prop.IsLiteral(expr):
		return expr.Value, nil
	case prop.IsReference(expr):
		return ctx.resolve(prop.RefSegments(expr))
	case prop.IsCall(expr):
		name := prop.CallName(expr)
		if debug.Eval() {
			debug.Logf("call %s on %s\n", name, ctx.Current.ID)
		}
		fn, ok := ctx.Registry.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, name)
		}
		return fn(ctx, prop.Args(expr))
	default:
		return nil, fmt.Errorf("%w: %q (type %s)", ErrNotExpression, expr.ID, typeID(expr))
	}
}

// resolve walks a reference's segment list.
//
// self/parent/root move the receiver; value/type/id are terminal field
// accesses; children/metadata/constraints select a map explicitly. A bare
// segment looks up children, then metadata, then constraints, in that
// order. Ending on a Property dereferences its value, recursing when the
// value is itself an expression.
func (c *Context) resolve(segs []string) (any, error) {
	if len(segs) == 0 {
		return nil, resolveErr(segs, "empty path")
	}
	if debug.Eval() {
		debug.Logf("resolve %s\n", strings.Join(segs, "."))
	}
	cur := c.Current
	selector := ""
	for i, seg := range segs {
		last := i == len(segs)-1
		if cur == nil {
			return nil, resolveErr(segs, "nothing to resolve %q against", seg)
		}
		if selector != "" {
			next := selectMap(cur, selector).Get(seg)
			if next == nil {
				return nil, resolveErr(segs, "no %s key %q under %q", selector, seg, cur.ID)
			}
			cur = next
			selector = ""
			continue
		}
		switch seg {
		case "self":
			cur = c.Current
		case "root":
			cur = c.Root
		case "parent":
			if c.ParentOf == nil {
				return nil, resolveErr(segs, "parent of %q requested with no parent lookup", cur.ID)
			}
			p := c.ParentOf(cur)
			if p == nil {
				return nil, resolveErr(segs, "%q has no parent", cur.ID)
			}
			cur = p
		case "value":
			if !last {
				return nil, resolveErr(segs, "segments after terminal %q", seg)
			}
			return c.deref(cur)
		case "type":
			if !last {
				return nil, resolveErr(segs, "segments after terminal %q", seg)
			}
			return cur.Type, nil
		case "id":
			if !last {
				return nil, resolveErr(segs, "segments after terminal %q", seg)
			}
			return cur.ID, nil
		case "children", "metadata", "constraints":
			selector = seg
		default:
			next := cur.Children.Get(seg)
			if next == nil {
				next = cur.Metadata.Get(seg)
			}
			if next == nil {
				next = cur.Constraints.Get(seg)
			}
			if next == nil {
				return nil, resolveErr(segs, "no child, metadata or constraint %q under %q", seg, cur.ID)
			}
			cur = next
		}
	}
	if selector != "" {
		return nil, resolveErr(segs, "dangling %q selector", selector)
	}
	return c.deref(cur)
}

// deref returns a resolved Property's value, recursing when the value is
// itself an expression.
func (c *Context) deref(p *prop.Property) (any, error) {
	v, ok := p.Value.(*prop.Property)
	if ok && prop.IsExpression(v) {
		return Evaluate(v, c.at(p))
	}
	return p.Value, nil
}

func selectMap(p *prop.Property, selector string) *prop.Map {
	switch selector {
	case "metadata":
		return p.Metadata
	case "constraints":
		return p.Constraints
	default:
		return p.Children
	}
}

func resolveErr(segs []string, format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: %s (path %q)", ErrResolve, detail, strings.Join(segs, "."))
}

func typeID(p *prop.Property) string {
	if p.Type == nil {
		return "<none>"
	}
	return p.Type.ID
}
