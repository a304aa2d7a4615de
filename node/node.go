package node

import (
	"errors"
	"fmt"

	"github.com/propkit/propkit/eval"
	"github.com/propkit/propkit/prop"
)

// ErrDestroyed reports mutation or subscription attempted on a node after
// Destroy.
var ErrDestroyed = errors.New("node destroyed")

// Node is the stateful wrapper around exactly one Property. It holds a
// non-owning parent reference, a shared registry, a lazily populated cache
// of child wrappers, active subscriptions, and the pending-notification and
// snapshot state used by batches and transactions (kept on the root for
// the whole tree).
type Node struct {
	prop     *prop.Property
	parent   *Node
	key      string
	registry *eval.Registry

	kids      map[string]*Node
	subs      []*subscription
	nextSubID int
	destroyed bool

	// pending paths while the tree is inside a batch
	pending    []string
	pendingSet map[string]bool

	// root-held tree state
	batchDepth int
	dirty      []*Node
	txs        []*txFrame
}

// New wraps a Property tree in a root Node. The registry is shared, not
// owned, and may be nil until evaluation is needed.
func New(p *prop.Property, registry *eval.Registry) (*Node, error) {
	if !prop.LooksLikeProperty(p) {
		return nil, fmt.Errorf("not a property tree root: %v", p)
	}
	return &Node{prop: p, registry: registry}, nil
}

// MustNew is New for statically known-good trees.
func MustNew(p *prop.Property, registry *eval.Registry) *Node {
	n, err := New(p, registry)
	if err != nil {
		panic(err)
	}
	return n
}

// Property returns the wrapped Property.
func (n *Node) Property() *prop.Property {
	return n.prop
}

// ID returns the wrapped Property's id.
func (n *Node) ID() string {
	return n.prop.ID
}

// Registry returns the attached registry.
func (n *Node) Registry() *eval.Registry {
	return n.registry
}

// SetRegistry attaches a registry to this node and every materialized
// descendant. Deserialized trees carry no executable functions, so a
// registry is attached after FromJSON.
func (n *Node) SetRegistry(r *eval.Registry) {
	n.registry = r
	for _, k := range n.kids {
		k.SetRegistry(r)
	}
}

// Destroy clears this node's own subscriptions and marks it inert. Further
// mutation or subscription attempts fail with ErrDestroyed. Destruction
// does not cascade to descendants.
func (n *Node) Destroy() {
	n.subs = nil
	n.destroyed = true
}

// Destroyed reports whether Destroy has been called.
func (n *Node) Destroyed() bool {
	return n.destroyed
}

// child materializes the wrapper for one child key.
func (n *Node) child(key string) *Node {
	if k, ok := n.kids[key]; ok {
		return k
	}
	p := n.prop.Child(key)
	if p == nil {
		return nil
	}
	if n.kids == nil {
		n.kids = map[string]*Node{}
	}
	k := &Node{prop: p, parent: n, key: key, registry: n.registry}
	n.kids[key] = k
	return k
}

// nodeFor returns the wrapper of an arbitrary Property in this node's
// subtree, materializing wrappers along the way. Nil when p is not in the
// subtree.
func (n *Node) nodeFor(p *prop.Property) *Node {
	if n.prop == p {
		return n
	}
	for _, key := range n.prop.Children.Keys() {
		if found := n.child(key).nodeFor(p); found != nil {
			return found
		}
	}
	return nil
}

// context builds the evaluation context for this node: current is the
// wrapped Property, root is the tree's root Property, and parent lookups
// resolve through the wrapper tree.
func (n *Node) context() *eval.Context {
	root := n.Root()
	return &eval.Context{
		Current:  n.prop,
		Root:     root.prop,
		Registry: n.registry,
		ParentOf: func(p *prop.Property) *prop.Property {
			found := root.nodeFor(p)
			if found == nil || found.parent == nil {
				return nil
			}
			return found.parent.prop
		},
	}
}
