package node

import (
	"fmt"
	"strings"

	"github.com/propkit/propkit/eval"
	"github.com/propkit/propkit/prop"
)

// SetOptions configures mutation calls. Silent suppresses change
// notification; Path applies the mutation to a descendant rather than the
// receiver.
type SetOptions struct {
	Silent bool
	Path   []string
}

func pickOpts(opts []SetOptions) SetOptions {
	if len(opts) == 0 {
		return SetOptions{}
	}
	return opts[0]
}

// RawValue returns the stored value unevaluated.
func (n *Node) RawValue() any {
	return n.prop.Value
}

// Value evaluates this node's value through the registry. A stored
// expression is dispatched; anything else is returned as-is. It suspends
// only when an operator function itself suspends.
func (n *Node) Value() (any, error) {
	v, ok := n.prop.Value.(*prop.Property)
	if ok && prop.IsExpression(v) {
		return eval.Evaluate(v, n.context())
	}
	return n.prop.Value, nil
}

// ValueAt evaluates the value of the descendant at a dot-delimited path.
func (n *Node) ValueAt(path string) (any, error) {
	target := n.Get(path)
	if target == nil {
		return nil, fmt.Errorf("%w: no node at %q under %q", eval.ErrResolve, path, n.ID())
	}
	return target.Value()
}

// SetValue replaces the value in place and triggers change propagation
// unless silenced. With a Path option the mutation applies to that
// descendant instead.
func (n *Node) SetValue(v any, opts ...SetOptions) error {
	o := pickOpts(opts)
	target := n
	if len(o.Path) > 0 {
		target = n.GetSegments(o.Path)
		if target == nil {
			return fmt.Errorf("%w: no node at %q under %q", eval.ErrResolve, strings.Join(o.Path, "."), n.ID())
		}
	}
	if target.destroyed {
		return fmt.Errorf("%w: %q", ErrDestroyed, target.ID())
	}
	target.recordTouch()
	target.prop.Value = v
	if o.Silent {
		return nil
	}
	return target.emitLocal()
}

// Reset restores the default value. A node with no default is a no-op.
func (n *Node) Reset(opts ...SetOptions) error {
	if n.prop.Default == nil {
		return nil
	}
	o := pickOpts(opts)
	o.Path = nil
	return n.SetValue(n.prop.Default, o)
}

// ResetDeep applies Reset pre-order to every descendant with a default, as
// one traversal, honoring a shared silent flag.
func (n *Node) ResetDeep(opts ...SetOptions) error {
	o := pickOpts(opts)
	o.Path = nil
	if err := n.Reset(o); err != nil {
		return err
	}
	for _, c := range n.Children() {
		if err := c.ResetDeep(o); err != nil {
			return err
		}
	}
	return nil
}
