package causal

import (
	"fmt"
	"slices"
)

// Hypergraph is the read-only collaborator interface consumed by
// [FromHypergraph]. Vertices returns every vertex identifier; Hyperedges
// returns each hyperedge as the set of its member vertices. Neither sequence
// needs to be ordered — the importer orders everything itself.
type Hypergraph interface {
	Vertices() []string
	Hyperedges() [][]string
}

// FromHypergraph builds a causal graph from a hypergraph. Every vertex
// becomes an event with empty metadata. Every hyperedge induces a total
// happens-before order among its members: the members are sorted
// lexicographically and a dependency is added from each earlier member to
// each later one, so a hyperedge of size k contributes C(k,2) edges.
//
// The construction is deterministic: re-importing the same hypergraph yields
// an identical graph regardless of the order vertices or hyperedges are
// reported in, because edge insertion is idempotent and each hyperedge's
// internal ordering rule is fixed.
//
// A hyperedge member that was not reported as a vertex is an error.
func FromHypergraph(h Hypergraph) (*Graph, error) {
	g := New()

	vertices := slices.Clone(h.Vertices())
	slices.Sort(vertices)
	for _, v := range vertices {
		g = g.AddEvent(v, nil)
	}

	for i, edge := range h.Hyperedges() {
		members := slices.Clone(edge)
		slices.Sort(members)
		for j, from := range members {
			for _, to := range members[j+1:] {
				next, err := g.AddDependency(from, to)
				if err != nil {
					return nil, fmt.Errorf("hyperedge %d: %w", i, err)
				}
				g = next
			}
		}
	}
	return g, nil
}
