package node

import (
	"errors"
	"fmt"
	"strings"

	"github.com/propkit/propkit/debug"
)

// ChangeFunc receives the set of changed paths, expressed relative to the
// node the subscription was registered on.
type ChangeFunc func(paths []string)

// Filter selects which changed paths a subscription sees. A subscription
// fires when at least one delivered path matches; the callback receives
// only the matching subset.
type Filter interface {
	match(path string) bool
}

type pathFilter []string

func (f pathFilter) match(path string) bool {
	for _, p := range f {
		if path == p || strings.HasPrefix(path, p+".") {
			return true
		}
	}
	return false
}

type exactFilter string

func (f exactFilter) match(path string) bool {
	return path == string(f)
}

type funcFilter func(string) bool

func (f funcFilter) match(path string) bool {
	return f(path)
}

// FilterPath matches a path exactly or as a dot-prefix: "a.b" matches
// "a.b" and "a.b.c".
func FilterPath(paths ...string) Filter {
	return pathFilter(paths)
}

// FilterFunc wraps a predicate over a path.
func FilterFunc(f func(path string) bool) Filter {
	return funcFilter(f)
}

type subscription struct {
	id     int
	cb     ChangeFunc
	filter Filter
}

// Subscribe registers a callback invoked whenever a notification reaches
// this node. A nil filter receives everything. The returned function
// unsubscribes; an unsubscription requested during a delivery takes effect
// for future deliveries only.
func (n *Node) Subscribe(cb ChangeFunc, filter Filter) (func(), error) {
	if n.destroyed {
		return nil, fmt.Errorf("%w: %q", ErrDestroyed, n.ID())
	}
	n.nextSubID++
	sub := &subscription{id: n.nextSubID, cb: cb, filter: filter}
	n.subs = append(n.subs, sub)
	return func() {
		for i, s := range n.subs {
			if s.id == sub.id {
				n.subs = append(n.subs[:i], n.subs[i+1:]...)
				return
			}
		}
	}, nil
}

// Watch is sugar for an exact-path subscription.
func (n *Node) Watch(path string, cb ChangeFunc) (func(), error) {
	return n.Subscribe(cb, exactFilter(path))
}

// EmitChange manually injects a notification for an arbitrary path without
// mutating anything. Ancestors see the path prefixed with this node's key
// chain, exactly as for a real mutation.
func (n *Node) EmitChange(path string) error {
	if n.destroyed {
		return fmt.Errorf("%w: %q", ErrDestroyed, n.ID())
	}
	err := n.deliver([]string{path})
	if n.parent != nil {
		err = errors.Join(err, n.parent.bubble([]string{n.key + "." + path}))
	}
	return err
}

// emitLocal announces a mutation of this node's own value. The node's own
// subscribers see its key-qualified path; ancestors see the key chain from
// themselves down to this node.
func (n *Node) emitLocal() error {
	label := n.key
	if label == "" {
		label = n.prop.ID
	}
	err := n.deliver([]string{label})
	if n.parent != nil {
		err = errors.Join(err, n.parent.bubble([]string{n.key}))
	}
	return err
}

// bubble delivers paths to this node's subscribers, then re-expresses them
// relative to the parent by prefixing this node's key and continues upward.
func (n *Node) bubble(paths []string) error {
	err := n.deliver(paths)
	if n.parent == nil {
		return err
	}
	prefixed := make([]string, len(paths))
	for i, p := range paths {
		prefixed[i] = n.key + "." + p
	}
	return errors.Join(err, n.parent.bubble(prefixed))
}

// deliver hands paths to this node's subscribers, or accumulates them when
// the tree is inside a batch. Delivery is synchronous and in registration
// order. A callback that panics does not stop the remaining subscribers:
// the panic is recovered, collected, and surfaced from the mutating call.
func (n *Node) deliver(paths []string) error {
	root := n.Root()
	if root.batchDepth > 0 {
		n.collectPending(root, paths)
		return nil
	}
	if len(n.subs) == 0 {
		return nil
	}
	if debug.Notify() {
		debug.Logf("deliver %v at %q\n", paths, n.ID())
	}
	// snapshot: unsubscription during delivery is not retroactive
	subs := make([]*subscription, len(n.subs))
	copy(subs, n.subs)
	var errs []error
	for _, sub := range subs {
		matched := paths
		if sub.filter != nil {
			matched = nil
			for _, p := range paths {
				if sub.filter.match(p) {
					matched = append(matched, p)
				}
			}
			if len(matched) == 0 {
				continue
			}
		}
		if err := n.invoke(sub, matched); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (n *Node) invoke(sub *subscription, paths []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber on %q panicked: %v", n.ID(), r)
		}
	}()
	sub.cb(paths)
	return nil
}

func (n *Node) collectPending(root *Node, paths []string) {
	if n.pendingSet == nil {
		n.pendingSet = map[string]bool{}
	}
	if len(n.pending) == 0 {
		root.dirty = append(root.dirty, n)
	}
	for _, p := range paths {
		if n.pendingSet[p] {
			continue
		}
		n.pendingSet[p] = true
		n.pending = append(n.pending, p)
	}
}

// Batch runs fn, coalescing every path emitted anywhere in the tree into
// one deduplicated set per notified node, delivered as a single
// notification when the outermost batch closes. Nested batches flatten
// into the outermost. Delivery happens even if fn panics; the panic then
// propagates.
func (n *Node) Batch(fn func()) (err error) {
	root := n.Root()
	root.batchDepth++
	if debug.Batch() {
		debug.Logf("batch open depth %d\n", root.batchDepth)
	}
	defer func() {
		root.batchDepth--
		if root.batchDepth == 0 {
			err = errors.Join(err, root.flushPending())
		}
	}()
	fn()
	return nil
}

func (root *Node) flushPending() error {
	dirty := root.dirty
	root.dirty = nil
	var errs []error
	for _, n := range dirty {
		paths := n.pending
		n.pending = nil
		n.pendingSet = nil
		if debug.Batch() {
			debug.Logf("batch flush %v at %q\n", paths, n.ID())
		}
		if err := n.deliver(paths); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
