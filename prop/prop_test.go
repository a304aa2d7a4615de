package prop

import (
	"testing"
)

func TestBootstrapGraphIsClosed(t *testing.T) {
	if RootType.Type != RootType {
		t.Errorf("root type must be its own type")
	}
	for _, mt := range []*Property{ExpressionType, OperatorType, ConstraintType, UserType} {
		if mt.Type != RootType {
			t.Errorf("%s: type = %v, want root type", mt.ID, mt.Type)
		}
	}
	for _, et := range []*Property{LiteralType, ReferenceType, CallType} {
		if et.Type != ExpressionType {
			t.Errorf("%s: type = %v, want expression type", et.ID, et.Type)
		}
	}
}

func TestRefNormalization(t *testing.T) {
	tests := []struct {
		name string
		ref  *Property
		want []string
	}{
		{"dotted", Ref("self.name.value"), []string{"self", "name", "value"}},
		{"segments", Ref("self", "name", "value"), []string{"self", "name", "value"}},
		{"single segment", Ref("root"), []string{"root"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RefSegments(tt.ref)
			if len(got) != len(tt.want) {
				t.Fatalf("segments = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("segment %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCallArgs(t *testing.T) {
	c := Call("add", Lit(2), Lit(3))
	if !IsCall(c) {
		t.Fatalf("IsCall = false")
	}
	if CallName(c) != "add" {
		t.Errorf("name = %q, want add", CallName(c))
	}
	args := Args(c)
	if len(args) != 2 {
		t.Fatalf("len(args) = %d, want 2", len(args))
	}
	if args[0].Value != 2 || args[1].Value != 3 {
		t.Errorf("args = %v, %v", args[0].Value, args[1].Value)
	}

	empty := Call("now")
	if empty.Children == nil || empty.Children.Len() != 0 {
		t.Errorf("zero-arg call must have an empty children map")
	}
	if got := Args(empty); len(got) != 0 {
		t.Errorf("Args(empty) = %v", got)
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		p    *Property
		f    func(*Property) bool
		want bool
	}{
		{"literal", Lit(1), IsLiteral, true},
		{"literal is expression", Lit(1), IsExpression, true},
		{"ref", Ref("self"), IsReference, true},
		{"ref is expression", Ref("self"), IsExpression, true},
		{"call", Call("f"), IsCall, true},
		{"user prop not expression", New("x"), IsExpression, false},
		{"root is type", RootType, IsType, true},
		{"user type is type", UserType, IsType, true},
		{"user prop not type", New("x"), IsType, false},
		{"constraint", Constraint("c", Lit(true)), IsConstraint, true},
		{"nil", nil, IsExpression, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f(tt.p); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLooksLikeProperty(t *testing.T) {
	if !LooksLikeProperty(New("x")) {
		t.Errorf("user property should look like a property")
	}
	if !LooksLikeProperty(RootType) {
		t.Errorf("root type should look like a property")
	}
	if LooksLikeProperty(nil) || LooksLikeProperty(42) || LooksLikeProperty(&Property{ID: "x"}) {
		t.Errorf("shapeless values should not look like properties")
	}
}

func TestMapOrder(t *testing.T) {
	m := NewMap()
	m.Set("c", New("c"))
	m.Set("a", New("a"))
	m.Set("b", New("b"))
	m.Set("a", New("a2")) // replace keeps position

	want := []string{"c", "a", "b"}
	got := m.Keys()
	if len(got) != len(want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key %d = %q, want %q", i, got[i], want[i])
		}
	}
	if m.Get("a").ID != "a2" {
		t.Errorf("replace did not take")
	}
	if !m.Delete("a") {
		t.Errorf("delete existing = false")
	}
	if m.Delete("a") {
		t.Errorf("delete missing = true")
	}
	if m.Len() != 2 {
		t.Errorf("len = %d, want 2", m.Len())
	}
}

func demoTree() *Property {
	return New("form").
		WithChild(New("firstName").
			WithValue("Ada").
			WithDefault("").
			WithMetadata(New("label").WithValue("First name")).
			WithConstraint(Constraint("required", Call("ne", Ref("self.value"), Lit(""))))).
		WithChild(New("age").
			WithValue(36).
			WithConstraint(Constraint("adult", Call("ge", Ref("self.value"), Lit(18))))).
		WithChild(New("fullName").
			WithValue(Call("concat", Ref("parent.firstName.value"), Lit("!"))))
}

func TestCloneEqual(t *testing.T) {
	a := demoTree()
	b := Clone(a)
	if !Equal(a, b) {
		t.Fatalf("clone not equal to original")
	}
	// no shared mutable structure
	b.Child("firstName").Value = "Grace"
	if Equal(a, b) {
		t.Errorf("mutating clone affected equality; value = %v", a.Child("firstName").Value)
	}
	if a.Child("firstName").Value != "Ada" {
		t.Errorf("mutating clone leaked into original")
	}
	// type pointers shared
	if b.Child("firstName").Type != a.Child("firstName").Type {
		t.Errorf("clone must share type identity")
	}
}

func TestEqualDetectsDifferences(t *testing.T) {
	base := demoTree
	tests := []struct {
		name   string
		mutate func(p *Property)
	}{
		{"value", func(p *Property) { p.Child("age").Value = 37 }},
		{"id", func(p *Property) { p.Child("age").ID = "years" }},
		{"type id", func(p *Property) { p.Child("age").Type = &Property{ID: "other", Type: RootType} }},
		{"metadata", func(p *Property) {
			p.Child("firstName").Metadata.Get("label").Value = "Given name"
		}},
		{"constraint", func(p *Property) { p.Child("age").Constraints.Delete("adult") }},
		{"children", func(p *Property) { p.Children.Delete("fullName") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := base(), base()
			tt.mutate(b)
			if Equal(a, b) {
				t.Errorf("mutation not detected")
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	a := demoTree()
	d, err := a.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	b := &Property{}
	if err := b.UnmarshalJSON(d); err != nil {
		t.Fatal(err)
	}
	if !Equal(a, b) {
		t.Fatalf("round trip not equal\njson: %s", d)
	}
	// expression substructure survives verbatim
	full := b.Child("fullName")
	v, ok := full.Value.(*Property)
	if !ok || !IsCall(v) {
		t.Fatalf("expression value lost in round trip: %T", full.Value)
	}
	if CallName(v) != "concat" {
		t.Errorf("call name = %q", CallName(v))
	}
	ref := Args(v)[0]
	if !IsReference(ref) {
		t.Fatalf("nested ref lost: %T %v", ref, ref)
	}
	segs := RefSegments(ref)
	if len(segs) != 3 || segs[0] != "parent" {
		t.Errorf("ref segments = %v", segs)
	}
	// insertion order preserved
	keys := b.Children.Keys()
	want := []string{"firstName", "age", "fullName"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("child order = %v, want %v", keys, want)
		}
	}
}

func TestPropertyShapedMapPayloadStaysData(t *testing.T) {
	roundTrip := func(t *testing.T, a *Property) *Property {
		t.Helper()
		d, err := a.MarshalJSON()
		if err != nil {
			t.Fatal(err)
		}
		b := &Property{}
		if err := b.UnmarshalJSON(d); err != nil {
			t.Fatal(err)
		}
		if !Equal(a, b) {
			t.Fatalf("round trip not equal\njson: %s", d)
		}
		return b
	}

	// a map payload that merely carries id/type keys is data, not an
	// expression, and must come back as a map
	a := New("r").WithValue(map[string]any{
		"id":   "x",
		"type": map[string]any{"id": "y"},
	})
	b := roundTrip(t, a)
	if _, ok := b.Value.(map[string]any); !ok {
		t.Fatalf("map payload decoded as %T", b.Value)
	}

	// an expression type id with a key outside the wire form is still data
	c := roundTrip(t, New("r").WithValue(map[string]any{
		"id":   "literal",
		"type": map[string]any{"id": "literal"},
		"note": "n",
	}))
	if _, ok := c.Value.(map[string]any); !ok {
		t.Fatalf("annotated map payload decoded as %T", c.Value)
	}

	// genuine expression payloads still come back as expressions
	d := roundTrip(t, New("r").WithValue(Call("add", Lit(1), Lit(2))))
	if v, ok := d.Value.(*Property); !ok || !IsCall(v) {
		t.Fatalf("expression payload decoded as %T", d.Value)
	}

	// a map payload rendered identically to an expression wire object is
	// indistinguishable and decodes as one; canonical-form value
	// comparison keeps the round trip equal regardless
	e := roundTrip(t, New("r").WithValue(map[string]any{
		"id":           "literal",
		"type":         map[string]any{"id": "literal"},
		"value":        1,
		"defaultValue": 2,
	}))
	if _, ok := e.Value.(*Property); !ok {
		t.Fatalf("mimicking payload decoded as %T", e.Value)
	}
}

func TestTypeSerializedByIDOnly(t *testing.T) {
	d, err := Lit(1).MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"id":"literal","type":{"id":"literal"},"value":1}`
	if string(d) != want {
		t.Errorf("wire form = %s, want %s", d, want)
	}
}
