package eval

import "errors"

var (
	// ErrUnknownOperator reports an operator-call naming a function absent
	// from the registry.
	ErrUnknownOperator = errors.New("unknown operator")

	// ErrResolve reports a reference segment that cannot be resolved: a
	// missing field or child, parent requested with no parent available,
	// or a malformed path.
	ErrResolve = errors.New("reference resolution failed")

	// ErrNotExpression reports evaluation of a Property that is not one of
	// the three expression kinds.
	ErrNotExpression = errors.New("not an expression")

	// ErrDepth reports evaluation recursion beyond MaxDepth, which a
	// self-referential expression graph would otherwise run away on.
	ErrDepth = errors.New("evaluation depth exceeded")
)
