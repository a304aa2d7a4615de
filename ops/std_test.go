package ops

import (
	"testing"

	"github.com/propkit/propkit/eval"
	"github.com/propkit/propkit/prop"
)

func run(t *testing.T, e *prop.Property) any {
	t.Helper()
	cur := prop.New("t")
	got, err := eval.Evaluate(e, &eval.Context{Current: cur, Root: cur, Registry: Std()})
	if err != nil {
		t.Fatal(err)
	}
	return got
}

func TestStdOperators(t *testing.T) {
	lit := prop.Lit
	tests := []struct {
		name string
		expr *prop.Property
		want any
	}{
		{"add", prop.Call("add", lit(2), lit(3)), 5},
		{"add folds", prop.Call("add", lit(1), lit(2), lit(3)), 6},
		{"sub", prop.Call("sub", lit(10), lit(4)), 6},
		{"mul", prop.Call("mul", lit(6), lit(7)), 42},
		{"div", prop.Call("div", lit(7), lit(2)), 3.5},
		{"mod", prop.Call("mod", lit(7), lit(2)), 1},
		{"eq numbers", prop.Call("eq", lit(2), lit(2.0)), true},
		{"ne", prop.Call("ne", lit("a"), lit("b")), true},
		{"lt", prop.Call("lt", lit(1), lit(2)), true},
		{"le", prop.Call("le", lit(2), lit(2)), true},
		{"gt strings", prop.Call("gt", lit("b"), lit("a")), true},
		{"ge", prop.Call("ge", lit(18), lit(18)), true},
		{"not", prop.Call("not", lit(false)), true},
		{"and", prop.Call("and", lit(true), lit(1), lit("x")), true},
		{"or", prop.Call("or", lit(false), lit("")), false},
		{"if then", prop.Call("if", lit(true), lit("a"), lit("b")), "a"},
		{"if else", prop.Call("if", lit(false), lit("a"), lit("b")), "b"},
		{"if missing else", prop.Call("if", lit(false), lit("a")), nil},
		{"coalesce", prop.Call("coalesce", lit(nil), lit("x"), lit("y")), "x"},
		{"concat", prop.Call("concat", lit("a"), lit(1), lit(true)), "a1true"},
		{"upper", prop.Call("upper", lit("ada")), "ADA"},
		{"lower", prop.Call("lower", lit("ADA")), "ada"},
		{"len string", prop.Call("len", lit("abc")), 3},
		{"len slice", prop.Call("len", lit([]any{1, 2})), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(t, tt.expr); got != tt.want {
				t.Errorf("got %v (%T), want %v", got, got, tt.want)
			}
		})
	}
}

func TestLazyBranches(t *testing.T) {
	r := Std()
	evaluated := false
	r.Register("spy", func(ctx *eval.Context, args []*prop.Property) (any, error) {
		evaluated = true
		return true, nil
	})
	cur := prop.New("t")
	ctx := &eval.Context{Current: cur, Root: cur, Registry: r}

	for _, e := range []*prop.Property{
		prop.Call("if", prop.Lit(true), prop.Lit(1), prop.Call("spy")),
		prop.Call("and", prop.Lit(false), prop.Call("spy")),
		prop.Call("or", prop.Lit(true), prop.Call("spy")),
		prop.Call("coalesce", prop.Lit("x"), prop.Call("spy")),
	} {
		if _, err := eval.Evaluate(e, ctx); err != nil {
			t.Fatal(err)
		}
	}
	if evaluated {
		t.Errorf("untaken argument was evaluated")
	}
}

func TestGetBinding(t *testing.T) {
	cur := prop.New("t")
	base := &eval.Context{Current: cur, Root: cur, Registry: Std()}
	ctx := base.WithBindings(map[string]any{"item": 7})
	got, err := eval.Evaluate(prop.Call("get", prop.Lit("item")), ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got != 7 {
		t.Errorf("get(item) = %v", got)
	}
	if _, err := eval.Evaluate(prop.Call("get", prop.Lit("missing")), ctx); err == nil {
		t.Errorf("missing binding did not fail")
	}
}

func TestExprAdapter(t *testing.T) {
	r := Std()
	r.Register("sumsq", MustExpr("args[0]*args[0] + args[1]*args[1]"))
	cur := prop.New("t")
	ctx := &eval.Context{Current: cur, Root: cur, Registry: r}
	got, err := eval.Evaluate(prop.Call("sumsq", prop.Lit(3), prop.Lit(4)), ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := ToInt(got); n != 25 {
		t.Errorf("sumsq(3,4) = %v", got)
	}

	if _, err := Expr("this is ( not valid"); err == nil {
		t.Errorf("bad source compiled")
	}
}

func TestExprSeesBindings(t *testing.T) {
	r := Std()
	r.Register("scaled", MustExpr("args[0] * factor"))
	cur := prop.New("t")
	ctx := (&eval.Context{Current: cur, Root: cur, Registry: r}).
		WithBindings(map[string]any{"factor": 10})
	got, err := eval.Evaluate(prop.Call("scaled", prop.Lit(4)), ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := ToInt(got); n != 40 {
		t.Errorf("scaled(4) = %v", got)
	}
}
