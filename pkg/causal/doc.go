// Package causal implements an in-memory causal dependency graph: a directed
// graph of events where an edge from → to means "from must happen before to".
//
// The central type is [Graph], an immutable value. Every mutating operation
// returns a new Graph and leaves the receiver untouched, so a Graph can be
// shared freely across goroutines without locking; "mutation" always produces
// a fresh snapshot.
//
// Construction never forbids cycles. Algorithms that require acyclicity
// ([Graph.CausalDepth] and everything built on it) detect cycles and fail
// with a [CycleError]; [Graph.TopologicalSort] reports an incomplete ordering
// as a normal outcome instead.
package causal
