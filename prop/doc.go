// Package prop defines the Property data model: a single homoiconic node
// kind in which types, values, expressions, validation constraints and
// metadata are all represented uniformly and arranged in a tree.
//
// The meta-type graph is closed: RootType is its own type, every other
// bootstrap type hangs off it, and the three expression kinds (literal,
// reference, call) are typed by ExpressionType.
//
// # Related Packages
//
//   - github.com/propkit/propkit/eval - Expression evaluation
//   - github.com/propkit/propkit/node - Live tree wrapper
package prop
