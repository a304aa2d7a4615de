package node

import (
	"encoding/json"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/propkit/propkit/prop"
)

// ToJSON emits the wire form of the wrapped tree: a full schema+data
// snapshot with types referenced by id and expression values verbatim.
// Parent links, the registry and subscriptions are not part of it.
func (n *Node) ToJSON() ([]byte, error) {
	return json.Marshal(n.prop)
}

// FromJSON rebuilds a Property tree from its wire form and wraps it in a
// fresh root Node. The serialized form carries no executable functions, so
// attach a registry afterward with SetRegistry.
func FromJSON(data []byte) (*Node, error) {
	p := &prop.Property{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, err
	}
	return New(p, nil)
}

// Snapshot walks the tree and returns evaluated leaf values keyed by
// dotted path, omitting schema, metadata and constraints. Leaves without a
// value or default are skipped. The default substitutes only when no value
// is stored at all; a stored expression evaluating to nil snapshots as nil.
func (n *Node) Snapshot() (map[string]any, error) {
	res := map[string]any{}
	var firstErr error
	n.Traverse(func(cur *Node, path []string) bool {
		if len(cur.Keys()) > 0 {
			return false
		}
		if cur.prop.Value == nil && cur.prop.Default == nil {
			return false
		}
		v, err := cur.Value()
		if err != nil {
			firstErr = err
			return true
		}
		if cur.prop.Value == nil {
			v = cur.prop.Default
		}
		res[strings.Join(path, ".")] = v
		return false
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return res, nil
}

// Clone produces an independent node over a deep copy of the tree, sharing
// the registry but nothing mutable: fresh subscriptions, no common
// Property structure.
func (n *Node) Clone() *Node {
	return MustNew(prop.Clone(n.prop), n.registry)
}

// Equals performs deep structural comparison of the wrapped trees,
// ignoring registry and subscription state.
func (n *Node) Equals(other *Node) bool {
	if other == nil {
		return false
	}
	return prop.Equal(n.prop, other.prop)
}

// Diff returns the JSON merge patch that turns this tree's wire form into
// other's. Two equal trees yield the empty patch {}.
func (n *Node) Diff(other *Node) ([]byte, error) {
	a, err := n.ToJSON()
	if err != nil {
		return nil, err
	}
	b, err := other.ToJSON()
	if err != nil {
		return nil, err
	}
	return jsonpatch.CreateMergePatch(a, b)
}

// ApplyPatch applies a JSON merge patch to the wire form and rebuilds a
// fresh node from the result, carrying the registry over.
func (n *Node) ApplyPatch(patch []byte) (*Node, error) {
	a, err := n.ToJSON()
	if err != nil {
		return nil, err
	}
	merged, err := jsonpatch.MergePatch(a, patch)
	if err != nil {
		return nil, err
	}
	res, err := FromJSON(merged)
	if err != nil {
		return nil, err
	}
	res.SetRegistry(n.registry)
	return res, nil
}
