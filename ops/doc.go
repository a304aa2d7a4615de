// Package ops is the operator library. The core dispatch machinery in
// eval ships no operators at all; callers populate a Registry themselves,
// and this package is the stock population: arithmetic, comparison,
// logic with lazy branches, string operations, and an adapter compiling
// expr-lang expressions into operator functions.
package ops
