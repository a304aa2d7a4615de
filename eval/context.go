package eval

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/propkit/propkit/prop"
)

// MaxDepth bounds recursion through expression values.
const MaxDepth = 256

// Context carries everything a single evaluation needs. It is threaded
// through operator functions, which receive it alongside their unevaluated
// arguments.
type Context struct {
	// Current is the receiver for self-relative lookups.
	Current *prop.Property

	// Root is the receiver for root-relative lookups.
	Root *prop.Property

	// Registry resolves operator names during call dispatch.
	Registry *Registry

	// Bindings holds variables for loop-style constructs, overlaid via
	// WithBindings and readable by operator functions.
	Bindings map[string]any

	// Depth counts expression recursion; Evaluate fails with ErrDepth
	// when it passes MaxDepth.
	Depth int

	// ParentOf resolves parent-relative references without requiring node
	// wrapping. A nil ParentOf makes any "parent" segment fail.
	ParentOf func(*prop.Property) *prop.Property
}

// WithBindings returns a new context with bindings shallowly overlaid onto
// the receiver's. Neither the receiver nor its bindings are mutated.
func (c *Context) WithBindings(bindings map[string]any) *Context {
	res := *c
	merged := make(map[string]any, len(c.Bindings)+len(bindings))
	for k, v := range c.Bindings {
		merged[k] = v
	}
	for k, v := range bindings {
		merged[k] = v
	}
	res.Bindings = merged
	return &res
}

// at returns a context one level deeper with a new current receiver.
func (c *Context) at(current *prop.Property) *Context {
	res := *c
	res.Current = current
	res.Depth++
	return &res
}

// EvalArg evaluates one call argument.
func (c *Context) EvalArg(arg *prop.Property) (any, error) {
	return Evaluate(arg, c.at(c.Current))
}

// EvalArgs evaluates args strictly left to right, each fully completed
// before the next starts, guaranteeing deterministic effect ordering.
func (c *Context) EvalArgs(args []*prop.Property) ([]any, error) {
	res := make([]any, len(args))
	for i, a := range args {
		v, err := c.EvalArg(a)
		if err != nil {
			return nil, fmt.Errorf("arg %d: %w", i, err)
		}
		res[i] = v
	}
	return res, nil
}

// EvalArgsParallel evaluates args concurrently and returns results in the
// original order once all complete. Use it for independent arguments where
// only latency matters; completion order is unspecified.
func (c *Context) EvalArgsParallel(args []*prop.Property) ([]any, error) {
	res := make([]any, len(args))
	g := new(errgroup.Group)
	for i, a := range args {
		g.Go(func() error {
			v, err := c.EvalArg(a)
			if err != nil {
				return fmt.Errorf("arg %d: %w", i, err)
			}
			res[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
