// Package eval resolves Property expressions to values: literals verbatim,
// references by walking their segment lists against an evaluation context,
// and operator calls by dispatching through a Registry of named operator
// functions.
//
// Operator functions receive their arguments unevaluated and decide
// themselves whether and when to evaluate each one, which is what makes
// short-circuiting constructs possible.
//
// # Related Packages
//
//   - github.com/propkit/propkit/prop - Property data model
//   - github.com/propkit/propkit/ops  - Operator library and expr adapter
package eval
