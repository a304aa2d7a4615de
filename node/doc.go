// Package node wraps a Property tree in live PropertyNode objects offering
// navigation, mutation, asynchronous-capable expression evaluation through
// an operator registry, reactive change notification with batching,
// transactional rollback, deep validation and bidirectional JSON
// serialization.
//
// A tree of nodes exclusively owns its wrapped Property tree. Children are
// owned by their parents; parent links are non-owning and re-derived at
// construction, never serialized. Execution is single-threaded and
// cooperative: batch and transaction take no lock.
//
// # Related Packages
//
//   - github.com/propkit/propkit/prop - Property data model
//   - github.com/propkit/propkit/eval - Expression evaluation
package node
