package ops

import (
	"errors"
	"fmt"
	"strings"

	"github.com/propkit/propkit/eval"
	"github.com/propkit/propkit/prop"
)

var errArity = errors.New("wrong argument count")

// Std returns a fresh Registry populated with the standard operators:
//
//	add sub mul div mod  eq ne lt le gt ge  not and or if coalesce
//	concat upper lower len  get
//
// if, and, or evaluate their arguments lazily; everything else evaluates
// strictly left to right.
func Std() *eval.Registry {
	r := eval.NewRegistry()
	r.Register("add", numeric(func(a, b float64) float64 { return a + b }))
	r.Register("sub", numeric(func(a, b float64) float64 { return a - b }))
	r.Register("mul", numeric(func(a, b float64) float64 { return a * b }))
	r.Register("div", divide)
	r.Register("mod", modulo)

	r.Register("eq", compare(func(c int) bool { return c == 0 }))
	r.Register("ne", compare(func(c int) bool { return c != 0 }))
	r.Register("lt", compare(func(c int) bool { return c < 0 }))
	r.Register("le", compare(func(c int) bool { return c <= 0 }))
	r.Register("gt", compare(func(c int) bool { return c > 0 }))
	r.Register("ge", compare(func(c int) bool { return c >= 0 }))

	r.Register("not", notOp)
	r.Register("and", andOp)
	r.Register("or", orOp)
	r.Register("if", ifOp)
	r.Register("coalesce", coalesceOp)

	r.Register("concat", concatOp)
	r.Register("upper", stringOp(strings.ToUpper))
	r.Register("lower", stringOp(strings.ToLower))
	r.Register("len", lenOp)

	r.Register("get", getOp)
	return r
}

// numeric lifts a float64 fold over two or more strictly evaluated args.
func numeric(f func(a, b float64) float64) eval.OpFunc {
	return func(ctx *eval.Context, args []*prop.Property) (any, error) {
		vals, err := ctx.EvalArgs(args)
		if err != nil {
			return nil, err
		}
		if len(vals) < 2 {
			return nil, fmt.Errorf("%w: need at least 2, got %d", errArity, len(vals))
		}
		acc, err := ToFloat(vals[0])
		if err != nil {
			return nil, err
		}
		for _, v := range vals[1:] {
			x, err := ToFloat(v)
			if err != nil {
				return nil, err
			}
			acc = f(acc, x)
		}
		return normalizeNumber(acc), nil
	}
}

func divide(ctx *eval.Context, args []*prop.Property) (any, error) {
	vals, err := ctx.EvalArgs(args)
	if err != nil {
		return nil, err
	}
	if len(vals) != 2 {
		return nil, fmt.Errorf("%w: div needs 2, got %d", errArity, len(vals))
	}
	a, err := ToFloat(vals[0])
	if err != nil {
		return nil, err
	}
	b, err := ToFloat(vals[1])
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, errors.New("division by zero")
	}
	return normalizeNumber(a / b), nil
}

func modulo(ctx *eval.Context, args []*prop.Property) (any, error) {
	vals, err := ctx.EvalArgs(args)
	if err != nil {
		return nil, err
	}
	if len(vals) != 2 {
		return nil, fmt.Errorf("%w: mod needs 2, got %d", errArity, len(vals))
	}
	a, err := ToInt(vals[0])
	if err != nil {
		return nil, err
	}
	b, err := ToInt(vals[1])
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, errors.New("division by zero")
	}
	return int(a % b), nil
}

// compare evaluates two args and applies the predicate to their ordering.
// Mixed numeric representations compare numerically; everything else by
// string form.
func compare(pred func(c int) bool) eval.OpFunc {
	return func(ctx *eval.Context, args []*prop.Property) (any, error) {
		vals, err := ctx.EvalArgs(args)
		if err != nil {
			return nil, err
		}
		if len(vals) != 2 {
			return nil, fmt.Errorf("%w: comparison needs 2, got %d", errArity, len(vals))
		}
		c, err := Compare(vals[0], vals[1])
		if err != nil {
			return nil, err
		}
		return pred(c), nil
	}
}

func notOp(ctx *eval.Context, args []*prop.Property) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: not needs 1, got %d", errArity, len(args))
	}
	v, err := ctx.EvalArg(args[0])
	if err != nil {
		return nil, err
	}
	return !eval.Truthy(v), nil
}

// andOp short-circuits: evaluation stops at the first falsy argument.
func andOp(ctx *eval.Context, args []*prop.Property) (any, error) {
	for _, a := range args {
		v, err := ctx.EvalArg(a)
		if err != nil {
			return nil, err
		}
		if !eval.Truthy(v) {
			return false, nil
		}
	}
	return true, nil
}

// orOp short-circuits: evaluation stops at the first truthy argument.
func orOp(ctx *eval.Context, args []*prop.Property) (any, error) {
	for _, a := range args {
		v, err := ctx.EvalArg(a)
		if err != nil {
			return nil, err
		}
		if eval.Truthy(v) {
			return true, nil
		}
	}
	return false, nil
}

// ifOp evaluates the condition and only the taken branch. A missing else
// yields nil.
func ifOp(ctx *eval.Context, args []*prop.Property) (any, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, fmt.Errorf("%w: if needs 2 or 3, got %d", errArity, len(args))
	}
	cond, err := ctx.EvalArg(args[0])
	if err != nil {
		return nil, err
	}
	if eval.Truthy(cond) {
		return ctx.EvalArg(args[1])
	}
	if len(args) == 3 {
		return ctx.EvalArg(args[2])
	}
	return nil, nil
}

// coalesceOp returns the first argument evaluating non-nil, lazily.
func coalesceOp(ctx *eval.Context, args []*prop.Property) (any, error) {
	for _, a := range args {
		v, err := ctx.EvalArg(a)
		if err != nil {
			return nil, err
		}
		if v != nil {
			return v, nil
		}
	}
	return nil, nil
}

func concatOp(ctx *eval.Context, args []*prop.Property) (any, error) {
	vals, err := ctx.EvalArgs(args)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	for _, v := range vals {
		sb.WriteString(ToString(v))
	}
	return sb.String(), nil
}

func stringOp(f func(string) string) eval.OpFunc {
	return func(ctx *eval.Context, args []*prop.Property) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: need 1, got %d", errArity, len(args))
		}
		v, err := ctx.EvalArg(args[0])
		if err != nil {
			return nil, err
		}
		return f(ToString(v)), nil
	}
}

func lenOp(ctx *eval.Context, args []*prop.Property) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: len needs 1, got %d", errArity, len(args))
	}
	v, err := ctx.EvalArg(args[0])
	if err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case string:
		return len(t), nil
	case []any:
		return len(t), nil
	case []string:
		return len(t), nil
	case map[string]any:
		return len(t), nil
	case nil:
		return 0, nil
	default:
		return nil, fmt.Errorf("len of %T", v)
	}
}

// getOp resolves a binding by name: get('item') reads ctx.Bindings["item"],
// the loop-variable companion of WithBindings.
func getOp(ctx *eval.Context, args []*prop.Property) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: get needs 1, got %d", errArity, len(args))
	}
	v, err := ctx.EvalArg(args[0])
	if err != nil {
		return nil, err
	}
	name, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("get of non-string %T", v)
	}
	bound, ok := ctx.Bindings[name]
	if !ok {
		return nil, fmt.Errorf("%w: no binding %q", eval.ErrResolve, name)
	}
	return bound, nil
}
