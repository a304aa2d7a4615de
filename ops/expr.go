package ops

import (
	"github.com/expr-lang/expr"

	"github.com/propkit/propkit/eval"
	"github.com/propkit/propkit/prop"
)

// Expr compiles an expr-lang source into an operator function. The
// compiled program runs with the strictly evaluated arguments bound as
// "args" plus any context bindings, and a few navigation helpers:
//
//	args[0] + args[1]
//	current()            // id of the evaluation receiver
//	value(path)          // resolve a reference path from the receiver
//
// Compilation happens once, at registration time.
func Expr(src string) (eval.OpFunc, error) {
	prg, err := expr.Compile(src)
	if err != nil {
		return nil, err
	}
	return func(ctx *eval.Context, args []*prop.Property) (any, error) {
		vals, err := ctx.EvalArgs(args)
		if err != nil {
			return nil, err
		}
		return expr.Run(prg, exprEnv(ctx, vals))
	}, nil
}

// MustExpr is Expr for statically known-good sources.
func MustExpr(src string) eval.OpFunc {
	fn, err := Expr(src)
	if err != nil {
		panic(err)
	}
	return fn
}

func exprEnv(ctx *eval.Context, vals []any) map[string]any {
	env := make(map[string]any, len(ctx.Bindings)+3)
	for k, v := range ctx.Bindings {
		env[k] = v
	}
	env["args"] = vals
	env["current"] = func() string {
		if ctx.Current == nil {
			return ""
		}
		return ctx.Current.ID
	}
	env["value"] = func(path string) any {
		v, err := eval.Evaluate(prop.Ref(path), ctx)
		if err != nil {
			return nil
		}
		return v
	}
	return env
}
