package node

// Visitor is applied to each node with its path segments relative to the
// traversal root. A true return halts the walk immediately, unvisited
// siblings included.
type Visitor func(n *Node, path []string) bool

// Traverse walks the subtree pre-order.
func (n *Node) Traverse(visit Visitor) bool {
	return n.traversePre(visit, nil)
}

func (n *Node) traversePre(visit Visitor, path []string) bool {
	if visit(n, path) {
		return true
	}
	for _, key := range n.Keys() {
		if n.child(key).traversePre(visit, childPath(path, key)) {
			return true
		}
	}
	return false
}

// childPath copies: visitors may retain the slice they are handed.
func childPath(path []string, key string) []string {
	res := make([]string, len(path), len(path)+1)
	copy(res, path)
	return append(res, key)
}

// TraversePostOrder walks the subtree post-order.
func (n *Node) TraversePostOrder(visit Visitor) bool {
	return n.traversePost(visit, nil)
}

func (n *Node) traversePost(visit Visitor, path []string) bool {
	for _, key := range n.Keys() {
		if n.child(key).traversePost(visit, childPath(path, key)) {
			return true
		}
	}
	return visit(n, path)
}

// TraverseBreadthFirst walks the subtree level by level.
func (n *Node) TraverseBreadthFirst(visit Visitor) bool {
	type entry struct {
		n    *Node
		path []string
	}
	queue := []entry{{n: n}}
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		if visit(e.n, e.path) {
			return true
		}
		for _, key := range e.n.Keys() {
			queue = append(queue, entry{n: e.n.child(key), path: childPath(e.path, key)})
		}
	}
	return false
}

// Find returns the first node in pre-order satisfying pred, nil if none.
func (n *Node) Find(pred func(*Node) bool) *Node {
	var res *Node
	n.Traverse(func(cur *Node, _ []string) bool {
		if pred(cur) {
			res = cur
			return true
		}
		return false
	})
	return res
}

// FindAll returns every node in pre-order satisfying pred.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var res []*Node
	n.Traverse(func(cur *Node, _ []string) bool {
		if pred(cur) {
			res = append(res, cur)
		}
		return false
	})
	return res
}

// FindByID returns the first node whose Property id matches.
func (n *Node) FindByID(id string) *Node {
	return n.Find(func(cur *Node) bool { return cur.ID() == id })
}

// FindByType returns every node whose type id matches.
func (n *Node) FindByType(typeID string) []*Node {
	return n.FindAll(func(cur *Node) bool {
		return cur.prop.Type != nil && cur.prop.Type.ID == typeID
	})
}

// Map applies f to each node in pre-order and collects the results.
func (n *Node) Map(f func(*Node) any) []any {
	var res []any
	n.Traverse(func(cur *Node, _ []string) bool {
		res = append(res, f(cur))
		return false
	})
	return res
}

// Filter is FindAll under its conventional name.
func (n *Node) Filter(pred func(*Node) bool) []*Node {
	return n.FindAll(pred)
}

// Reduce folds f over the subtree in pre-order.
func (n *Node) Reduce(f func(acc any, cur *Node) any, init any) any {
	acc := init
	n.Traverse(func(cur *Node, _ []string) bool {
		acc = f(acc, cur)
		return false
	})
	return acc
}

// Some reports whether any node satisfies pred; the walk stops early.
func (n *Node) Some(pred func(*Node) bool) bool {
	return n.Find(pred) != nil
}

// Every reports whether all nodes satisfy pred; the walk stops early.
func (n *Node) Every(pred func(*Node) bool) bool {
	failed := n.Traverse(func(cur *Node, _ []string) bool {
		return !pred(cur)
	})
	return !failed
}

// Count returns the number of nodes in the subtree, this node included.
func (n *Node) Count() int {
	count := 0
	n.Traverse(func(*Node, []string) bool {
		count++
		return false
	})
	return count
}
