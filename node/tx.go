package node

import "github.com/propkit/propkit/debug"

// txFrame snapshots the pre-call value of every node touched inside one
// transaction, first touch only.
type txFrame struct {
	touched []txTouch
	seen    map[*Node]bool
}

type txTouch struct {
	node *Node
	old  any
}

// recordTouch saves a node's current value into the innermost open
// transaction frame, if any. Only the first touch per node per frame is
// recorded, so rollback restores the pre-call value.
func (n *Node) recordTouch() {
	n.recordOld(n.prop.Value)
}

func (n *Node) recordOld(old any) {
	root := n.Root()
	if len(root.txs) == 0 {
		return
	}
	frame := root.txs[len(root.txs)-1]
	if frame.seen[n] {
		return
	}
	frame.seen[n] = true
	frame.touched = append(frame.touched, txTouch{node: n, old: old})
}

// Transaction runs fn. On a nil return the mutations persist. On an error
// or a panic, every value mutated during fn is restored to its pre-call
// value, then the original error is returned unwrapped (or the panic
// resumes), so callers can match on it. Rollback restores values silently;
// the failed mutations were never observed as committed state. Assumes
// single-threaded cooperative execution; no lock is taken.
func (n *Node) Transaction(fn func() error) error {
	root := n.Root()
	frame := &txFrame{seen: map[*Node]bool{}}
	root.txs = append(root.txs, frame)
	committed := false
	defer func() {
		root.txs = root.txs[:len(root.txs)-1]
		if committed {
			// surviving touches belong to the enclosing frame, if any
			for _, t := range frame.touched {
				t.node.recordOld(t.old)
			}
			return
		}
		if debug.Tx() {
			debug.Logf("rollback %d touched\n", len(frame.touched))
		}
		for i := len(frame.touched) - 1; i >= 0; i-- {
			t := frame.touched[i]
			t.node.prop.Value = t.old
		}
	}()
	if err := fn(); err != nil {
		return err
	}
	committed = true
	return nil
}
