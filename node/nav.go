package node

import "strings"

// Parent returns the parent node, nil at the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Root walks to the ancestor with no parent.
func (n *Node) Root() *Node {
	res := n
	for res.parent != nil {
		res = res.parent
	}
	return res
}

// Depth is the ancestor count; the root is 0.
func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Child returns the named child node or nil.
func (n *Node) Child(key string) *Node {
	return n.child(key)
}

// Keys enumerates child keys in insertion order.
func (n *Node) Keys() []string {
	return n.prop.Children.Keys()
}

// Children returns child nodes in insertion order.
func (n *Node) Children() []*Node {
	keys := n.Keys()
	res := make([]*Node, 0, len(keys))
	for _, k := range keys {
		res = append(res, n.child(k))
	}
	return res
}

// Path returns the key chain from the root to this node. The root itself
// has an empty path.
func (n *Node) Path() []string {
	if n.parent == nil {
		return nil
	}
	return append(n.parent.Path(), n.key)
}

// PathString is Path joined with dots.
func (n *Node) PathString() string {
	return strings.Join(n.Path(), ".")
}

// Ancestors returns the chain from the parent up to the root.
func (n *Node) Ancestors() []*Node {
	var res []*Node
	for p := n.parent; p != nil; p = p.parent {
		res = append(res, p)
	}
	return res
}

// Descendants returns the subtree below this node in pre-order.
func (n *Node) Descendants() []*Node {
	var res []*Node
	for _, c := range n.Children() {
		res = append(res, c)
		res = append(res, c.Descendants()...)
	}
	return res
}

// Siblings returns the other children of this node's parent, in order.
func (n *Node) Siblings() []*Node {
	if n.parent == nil {
		return nil
	}
	var res []*Node
	for _, c := range n.parent.Children() {
		if c != n {
			res = append(res, c)
		}
	}
	return res
}

// NextSibling returns the sibling after this node, nil at the end.
func (n *Node) NextSibling() *Node {
	return n.siblingAt(1)
}

// PrevSibling returns the sibling before this node, nil at the start.
func (n *Node) PrevSibling() *Node {
	return n.siblingAt(-1)
}

func (n *Node) siblingAt(offset int) *Node {
	if n.parent == nil {
		return nil
	}
	keys := n.parent.Keys()
	for i, k := range keys {
		if k == n.key {
			j := i + offset
			if j < 0 || j >= len(keys) {
				return nil
			}
			return n.parent.child(keys[j])
		}
	}
	return nil
}

// Get resolves a dot-delimited path through children only; metadata and
// constraints are not traversed here (reference-path resolution is the
// precise addressing mode, Get is general navigation). Nil when any
// segment is missing.
func (n *Node) Get(path string) *Node {
	if path == "" {
		return n
	}
	return n.GetSegments(strings.Split(path, "."))
}

// GetSegments is Get over an explicit segment list.
func (n *Node) GetSegments(segs []string) *Node {
	cur := n
	for _, seg := range segs {
		cur = cur.child(seg)
		if cur == nil {
			return nil
		}
	}
	return cur
}
