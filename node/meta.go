package node

import (
	"fmt"

	"github.com/propkit/propkit/eval"
	"github.com/propkit/propkit/prop"
)

// Metadata and constraints share one API shape: key enumeration, existence
// checks, raw and evaluated accessors, a setter honoring Silent, and a
// remover reporting prior existence.

func (n *Node) MetadataKeys() []string {
	return n.prop.Metadata.Keys()
}

func (n *Node) HasMetadata() bool {
	return n.prop.Metadata.Len() > 0
}

func (n *Node) HasMetadataKey(key string) bool {
	return n.prop.Metadata.Has(key)
}

// RawMetadata returns the stored metadata Property, unevaluated.
func (n *Node) RawMetadata(key string) *prop.Property {
	return n.prop.Metadata.Get(key)
}

// MetadataValue evaluates the named metadata entry through the registry.
func (n *Node) MetadataValue(key string) (any, error) {
	m := n.prop.Metadata.Get(key)
	if m == nil {
		return nil, fmt.Errorf("%w: no metadata %q on %q", eval.ErrResolve, key, n.ID())
	}
	return n.evalEntry(m)
}

// SetMetadata inserts or replaces, emitting a change unless silenced.
func (n *Node) SetMetadata(key string, m *prop.Property, opts ...SetOptions) error {
	if n.destroyed {
		return fmt.Errorf("%w: %q", ErrDestroyed, n.ID())
	}
	if n.prop.Metadata == nil {
		n.prop.Metadata = prop.NewMap()
	}
	n.prop.Metadata.Set(key, m)
	if pickOpts(opts).Silent {
		return nil
	}
	return n.EmitChange("metadata." + key)
}

// RemoveMetadata deletes key, reporting whether it existed.
func (n *Node) RemoveMetadata(key string) (bool, error) {
	if n.destroyed {
		return false, fmt.Errorf("%w: %q", ErrDestroyed, n.ID())
	}
	return n.prop.Metadata.Delete(key), nil
}

func (n *Node) ConstraintKeys() []string {
	return n.prop.Constraints.Keys()
}

func (n *Node) HasConstraints() bool {
	return n.prop.Constraints.Len() > 0
}

func (n *Node) HasConstraint(key string) bool {
	return n.prop.Constraints.Has(key)
}

// RawConstraint returns the stored constraint Property, unevaluated.
func (n *Node) RawConstraint(key string) *prop.Property {
	return n.prop.Constraints.Get(key)
}

// ConstraintValue evaluates the named constraint and coerces the result to
// pass/fail: valid means truthy.
func (n *Node) ConstraintValue(key string) (bool, error) {
	c := n.prop.Constraints.Get(key)
	if c == nil {
		return false, fmt.Errorf("%w: no constraint %q on %q", eval.ErrResolve, key, n.ID())
	}
	v, err := n.evalEntry(c)
	if err != nil {
		return false, err
	}
	return eval.Truthy(v), nil
}

// SetConstraint inserts or replaces, emitting a change unless silenced.
func (n *Node) SetConstraint(key string, c *prop.Property, opts ...SetOptions) error {
	if n.destroyed {
		return fmt.Errorf("%w: %q", ErrDestroyed, n.ID())
	}
	if n.prop.Constraints == nil {
		n.prop.Constraints = prop.NewMap()
	}
	n.prop.Constraints.Set(key, c)
	if pickOpts(opts).Silent {
		return nil
	}
	return n.EmitChange("constraints." + key)
}

// RemoveConstraint deletes key, reporting whether it existed.
func (n *Node) RemoveConstraint(key string) (bool, error) {
	if n.destroyed {
		return false, fmt.Errorf("%w: %q", ErrDestroyed, n.ID())
	}
	return n.prop.Constraints.Delete(key), nil
}

// evalEntry evaluates a metadata or constraint entry: an expression entry
// is dispatched directly, an entry whose value is an expression is
// dereferenced, anything else reads raw.
func (n *Node) evalEntry(p *prop.Property) (any, error) {
	ctx := n.context()
	if prop.IsExpression(p) {
		return eval.Evaluate(p, ctx)
	}
	if v, ok := p.Value.(*prop.Property); ok && prop.IsExpression(v) {
		return eval.Evaluate(v, ctx)
	}
	return p.Value, nil
}
