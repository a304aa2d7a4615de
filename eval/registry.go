package eval

import "github.com/propkit/propkit/prop"

// OpFunc is a named operator function. args arrive unevaluated in call
// order; the operator evaluates them through the context as needed.
type OpFunc func(ctx *Context, args []*prop.Property) (any, error)

// Registry maps operator names to operator functions. It is a pure lookup
// table: no arity or signature validation happens here. A Registry may be
// shared read-mostly across many trees; it is not internally synchronized,
// so concurrent mutation during in-flight evaluation is the caller's to
// serialize.
type Registry struct {
	names []string
	ops   map[string]OpFunc
}

func NewRegistry() *Registry {
	return &Registry{ops: map[string]OpFunc{}}
}

// Register inserts or overwrites. Chainable.
func (r *Registry) Register(name string, fn OpFunc) *Registry {
	if _, ok := r.ops[name]; !ok {
		r.names = append(r.names, name)
	}
	r.ops[name] = fn
	return r
}

func (r *Registry) Get(name string) (OpFunc, bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.ops[name]
	return fn, ok
}

func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Unregister removes name, reporting whether an entry existed.
func (r *Registry) Unregister(name string) bool {
	if r == nil {
		return false
	}
	if _, ok := r.ops[name]; !ok {
		return false
	}
	delete(r.ops, name)
	for i, n := range r.names {
		if n == name {
			r.names = append(r.names[:i], r.names[i+1:]...)
			break
		}
	}
	return true
}

func (r *Registry) Clear() {
	r.names = nil
	r.ops = map[string]OpFunc{}
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Names returns registered names in registration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	res := make([]string, len(r.names))
	copy(res, r.names)
	return res
}
