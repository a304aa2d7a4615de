package node

import (
	"fmt"
	"strings"

	"github.com/propkit/propkit/debug"
)

// Result is the outcome of validating one node. Errors maps each failing
// constraint's id to a human-readable message. Validation failures are
// data, never errors: UI code renders them without exception handling.
type Result struct {
	Valid  bool
	Errors map[string]string
}

// DeepResult accumulates failing nodes across a subtree, keyed by path,
// then by constraint id. Only nodes with at least one failing constraint
// appear.
type DeepResult struct {
	Valid  bool
	Errors map[string]map[string]string
}

// Validate evaluates every constraint on this node. There is no
// short-circuit: all constraints are evaluated even after one fails, so
// the result carries every failing message at once. A constraint whose
// evaluation itself errors fails validation with the error text as its
// message.
func (n *Node) Validate() Result {
	res := Result{Valid: true, Errors: map[string]string{}}
	for _, key := range n.ConstraintKeys() {
		ok, err := n.ConstraintValue(key)
		if err != nil {
			res.Valid = false
			res.Errors[key] = err.Error()
			continue
		}
		if ok {
			continue
		}
		res.Valid = false
		res.Errors[key] = n.constraintMessage(key)
	}
	if debug.Validate() {
		debug.Logf("validate %q: valid=%v errors=%d\n", n.ID(), res.Valid, len(res.Errors))
	}
	return res
}

// constraintMessage sources the failing message from the constraint's own
// evaluated "message" metadata when present, else a generic default.
func (n *Node) constraintMessage(key string) string {
	c := n.RawConstraint(key)
	if m := c.Metadata.Get("message"); m != nil {
		v, err := n.evalEntry(m)
		if err == nil {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return fmt.Sprintf("constraint %q failed", key)
}

// ValidateDeep validates the whole subtree pre-order. Overall validity is
// the conjunction across the subtree.
func (n *Node) ValidateDeep() DeepResult {
	res := DeepResult{Valid: true, Errors: map[string]map[string]string{}}
	n.Traverse(func(cur *Node, path []string) bool {
		r := cur.Validate()
		if !r.Valid {
			res.Valid = false
			res.Errors[strings.Join(path, ".")] = r.Errors
		}
		return false
	})
	return res
}
