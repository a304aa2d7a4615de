package prop

// Property is the single entity type of the system. Types, data values,
// expressions, constraints and metadata are all Properties.
//
// ID is unique only among siblings of the map it is stored under, never
// globally. Type points into the meta-type graph (or at another Property
// acting as a type). Value optionally holds a literal payload, a []string
// reference path, an operator name, or a nested expression *Property to be
// evaluated. Default is the fallback used by reset operations; nil means
// absent.
type Property struct {
	ID      string
	Type    *Property
	Value   any
	Default any

	Metadata    *Map
	Constraints *Map
	Children    *Map
}

// Map is an insertion-ordered map from key to *Property. Iteration over
// Keys() is deterministic.
type Map struct {
	keys []string
	vals map[string]*Property
}

func NewMap() *Map {
	return &Map{vals: map[string]*Property{}}
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	res := make([]string, len(m.keys))
	copy(res, m.keys)
	return res
}

func (m *Map) Get(key string) *Property {
	if m == nil {
		return nil
	}
	return m.vals[key]
}

func (m *Map) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.vals[key]
	return ok
}

// Set inserts or replaces. Insertion order is preserved on replace.
func (m *Map) Set(key string, p *Property) *Map {
	if m.vals == nil {
		m.vals = map[string]*Property{}
	}
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = p
	return m
}

// Delete removes key, reporting whether it was present.
func (m *Map) Delete(key string) bool {
	if m == nil {
		return false
	}
	if _, ok := m.vals[key]; !ok {
		return false
	}
	delete(m.vals, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Each visits entries in insertion order. Returning false stops the walk.
func (m *Map) Each(f func(key string, p *Property) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !f(k, m.vals[k]) {
			return
		}
	}
}

// New returns a user Property with the given id, typed UserType.
func New(id string) *Property {
	return &Property{ID: id, Type: UserType}
}

// WithValue sets the value and returns the receiver for chaining.
func (p *Property) WithValue(v any) *Property {
	p.Value = v
	return p
}

// WithDefault sets the default value and returns the receiver.
func (p *Property) WithDefault(v any) *Property {
	p.Default = v
	return p
}

// WithChild inserts a child under its own id and returns the receiver.
func (p *Property) WithChild(c *Property) *Property {
	if p.Children == nil {
		p.Children = NewMap()
	}
	p.Children.Set(c.ID, c)
	return p
}

// WithMetadata inserts a metadata entry under its own id.
func (p *Property) WithMetadata(m *Property) *Property {
	if p.Metadata == nil {
		p.Metadata = NewMap()
	}
	p.Metadata.Set(m.ID, m)
	return p
}

// WithConstraint inserts a constraint entry under its own id.
func (p *Property) WithConstraint(c *Property) *Property {
	if p.Constraints == nil {
		p.Constraints = NewMap()
	}
	p.Constraints.Set(c.ID, c)
	return p
}

// Child returns the named child or nil.
func (p *Property) Child(key string) *Property {
	return p.Children.Get(key)
}
