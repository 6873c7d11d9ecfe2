package causal

import (
	"maps"
	"slices"
)

// Ancestors returns every event reachable by following predecessor edges
// transitively from id, excluding id itself, in sorted order. The traversal
// keeps a visited set, so shared ancestors are reported once and cyclic
// graphs terminate.
func (g *Graph) Ancestors(id string) []string {
	return sortedSet(g.reach(id, g.dependencies))
}

// Descendants returns every event reachable by following successor edges
// transitively from id, excluding id itself, in sorted order.
func (g *Graph) Descendants(id string) []string {
	return sortedSet(g.reach(id, g.dependents))
}

// reach collects the transitive closure of id over the given adjacency index
// with a worklist traversal. id itself is only included if it lies on a cycle
// through itself; callers exclude it below.
func (g *Graph) reach(id string, index map[string]eventSet) eventSet {
	seen := eventSet{}
	work := []string{id}
	for len(work) > 0 {
		curr := work[len(work)-1]
		work = work[:len(work)-1]
		for next := range index[curr] {
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = struct{}{}
			work = append(work, next)
		}
	}
	delete(seen, id)
	return seen
}

// IsCausalPredecessor reports whether a must happen before b, i.e. whether a
// is a transitive ancestor of b.
func (g *Graph) IsCausalPredecessor(a, b string) bool {
	set := g.reach(b, g.dependencies)
	_, ok := set[a]
	return ok
}

// InDegree returns the number of immediate predecessors of the event,
// 0 for absent events.
func (g *Graph) InDegree(id string) int { return len(g.dependencies[id]) }

// OutDegree returns the number of immediate successors of the event,
// 0 for absent events.
func (g *Graph) OutDegree(id string) int { return len(g.dependents[id]) }

// SourceEvents returns all events with no predecessors, sorted.
func (g *Graph) SourceEvents() []string {
	var sources []string
	for id := range g.events {
		if len(g.dependencies[id]) == 0 {
			sources = append(sources, id)
		}
	}
	slices.Sort(sources)
	return sources
}

// SinkEvents returns all events with no successors, sorted.
func (g *Graph) SinkEvents() []string {
	var sinks []string
	for id := range g.events {
		if len(g.dependents[id]) == 0 {
			sinks = append(sinks, id)
		}
	}
	slices.Sort(sinks)
	return sinks
}

// CausalCone returns the union of the event's ancestors and descendants,
// sorted.
func (g *Graph) CausalCone(id string) []string {
	cone := g.reach(id, g.dependencies)
	maps.Copy(cone, g.reach(id, g.dependents))
	delete(cone, id)
	return sortedSet(cone)
}

// depth-computation scratch states. The state map lives for a single call
// tree and never leaks into the Graph value.
const (
	depthUnvisited = iota
	depthInProgress
	depthResolved
)

// CausalDepth returns the length of the longest dependency chain ending at
// the event; source events have depth 0. If any cycle is reachable from id
// through predecessor edges, a *CycleError naming the first revisited event
// is returned, even when id itself is not on the cycle.
func (g *Graph) CausalDepth(id string) (int, error) {
	return g.causalDepth(id, map[string]int{}, map[string]int{})
}

func (g *Graph) causalDepth(id string, memo map[string]int, state map[string]int) (int, error) {
	switch state[id] {
	case depthResolved:
		return memo[id], nil
	case depthInProgress:
		return 0, &CycleError{Event: id}
	}
	state[id] = depthInProgress

	depth := 0
	for pred := range g.dependencies[id] {
		d, err := g.causalDepth(pred, memo, state)
		if err != nil {
			return 0, err
		}
		if d+1 > depth {
			depth = d + 1
		}
	}

	state[id] = depthResolved
	memo[id] = depth
	return depth, nil
}

// allDepths computes the causal depth of every event with one shared memo.
func (g *Graph) allDepths() (map[string]int, error) {
	memo := map[string]int{}
	state := map[string]int{}
	for id := range g.events {
		if _, err := g.causalDepth(id, memo, state); err != nil {
			return nil, err
		}
	}
	return memo, nil
}

// EventsAtDepth returns all events whose causal depth equals depth, sorted.
// The result is empty (not an error) for depths no event occupies.
func (g *Graph) EventsAtDepth(depth int) ([]string, error) {
	depths, err := g.allDepths()
	if err != nil {
		return nil, err
	}
	var out []string
	for id, d := range depths {
		if d == depth {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out, nil
}

// CausalWidth returns a map from depth to the number of events at that
// depth, covering every depth present in the graph.
func (g *Graph) CausalWidth() (map[int]int, error) {
	depths, err := g.allDepths()
	if err != nil {
		return nil, err
	}
	width := map[int]int{}
	for _, d := range depths {
		width[d]++
	}
	return width, nil
}

// Stats summarizes a causal graph.
type Stats struct {
	EventCount      int     `json:"event_count"`
	DependencyCount int     `json:"dependency_count"`
	SourceCount     int     `json:"source_count"`
	SinkCount       int     `json:"sink_count"`
	MaxDepth        int     `json:"max_depth"`
	AvgInDegree     float64 `json:"avg_in_degree"`
	AvgOutDegree    float64 `json:"avg_out_degree"`
	Acyclic         bool    `json:"acyclic"`
}

// Stats computes summary statistics. An empty graph yields zero counts and
// zero averages. The max-depth computation requires acyclicity, so Stats
// propagates a *CycleError for cyclic graphs; callers that only need the
// acyclicity verdict should use [Graph.Acyclic].
func (g *Graph) Stats() (Stats, error) {
	s := Stats{
		EventCount:      g.EventCount(),
		DependencyCount: g.DependencyCount(),
		SourceCount:     len(g.SourceEvents()),
		SinkCount:       len(g.SinkEvents()),
		Acyclic:         g.Acyclic(),
	}

	depths, err := g.allDepths()
	if err != nil {
		return Stats{}, err
	}
	for _, d := range depths {
		if d > s.MaxDepth {
			s.MaxDepth = d
		}
	}

	if s.EventCount > 0 {
		edges := float64(s.DependencyCount)
		s.AvgInDegree = edges / float64(s.EventCount)
		s.AvgOutDegree = edges / float64(s.EventCount)
	}
	return s, nil
}
