package causal

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrUnknownEvent is returned by [Graph.AddDependency] and
	// [Graph.UpdateEventMetadata] when they reference an event that has not
	// been added to the graph. Dependencies are never auto-created.
	ErrUnknownEvent = errors.New("unknown event")

	// ErrCycle is the sentinel wrapped by [CycleError]. Use
	// errors.Is(err, ErrCycle) to detect cycle failures without caring about
	// the offending event.
	ErrCycle = errors.New("graph contains a cycle")
)

// CycleError reports that a dependency cycle was reached while computing a
// causal depth. Event names an event on (or downstream of) the cycle.
type CycleError struct {
	Event string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected at event %q", e.Event)
}

// Unwrap returns ErrCycle for errors.Is compatibility.
func (e *CycleError) Unwrap() error { return ErrCycle }

// Metadata stores arbitrary key-value pairs attached to an event.
// The "rule" key, when present, is picked up by renderers as a second label
// line; no other key carries meaning inside this package.
type Metadata map[string]any

// eventSet is a set of event identifiers.
type eventSet map[string]struct{}

func (s eventSet) clone() eventSet {
	return maps.Clone(s)
}

// Graph is an immutable causal dependency graph over string event
// identifiers. The zero value is not usable; use [New].
//
// dependencies is keyed by the target of each edge and holds its
// predecessors; dependents is maintained as the exact inverse
// (from ∈ dependencies[to] iff to ∈ dependents[from]).
type Graph struct {
	events       eventSet
	dependencies map[string]eventSet
	dependents   map[string]eventSet
	eventData    map[string]Metadata
}

// New creates an empty causal graph.
func New() *Graph {
	return &Graph{
		events:       eventSet{},
		dependencies: map[string]eventSet{},
		dependents:   map[string]eventSet{},
		eventData:    map[string]Metadata{},
	}
}

// clone deep-copies the graph so a mutator can modify the copy freely.
func (g *Graph) clone() *Graph {
	out := &Graph{
		events:       g.events.clone(),
		dependencies: make(map[string]eventSet, len(g.dependencies)),
		dependents:   make(map[string]eventSet, len(g.dependents)),
		eventData:    make(map[string]Metadata, len(g.eventData)),
	}
	for id, set := range g.dependencies {
		out.dependencies[id] = set.clone()
	}
	for id, set := range g.dependents {
		out.dependents[id] = set.clone()
	}
	for id, meta := range g.eventData {
		out.eventData[id] = maps.Clone(meta)
	}
	return out
}

// AddEvent returns a graph containing the event. Adding an existing event is
// allowed and overwrites its metadata. A nil meta is stored as an empty map.
func (g *Graph) AddEvent(id string, meta Metadata) *Graph {
	out := g.clone()
	out.events[id] = struct{}{}
	if meta == nil {
		meta = Metadata{}
	}
	out.eventData[id] = maps.Clone(meta)
	return out
}

// AddDependency returns a graph with the edge from → to, meaning from must
// causally precede to. Both events must already exist; otherwise
// ErrUnknownEvent is returned and no mutation is committed. Adding an edge
// that already exists is a no-op.
//
// Self-dependencies (from == to) are accepted as structural edges. They form
// a trivial cycle which surfaces later in [Graph.CausalDepth] and
// [Graph.TopologicalSort], matching the treatment of longer cycles.
func (g *Graph) AddDependency(from, to string) (*Graph, error) {
	if !g.Contains(from) {
		return nil, fmt.Errorf("add dependency %s→%s: %w: %s", from, to, ErrUnknownEvent, from)
	}
	if !g.Contains(to) {
		return nil, fmt.Errorf("add dependency %s→%s: %w: %s", from, to, ErrUnknownEvent, to)
	}
	out := g.clone()
	if out.dependencies[to] == nil {
		out.dependencies[to] = eventSet{}
	}
	if out.dependents[from] == nil {
		out.dependents[from] = eventSet{}
	}
	out.dependencies[to][from] = struct{}{}
	out.dependents[from][to] = struct{}{}
	return out, nil
}

// RemoveDependency returns a graph without the edge from → to.
// Removing an edge that does not exist is a no-op, not an error.
func (g *Graph) RemoveDependency(from, to string) *Graph {
	out := g.clone()
	out.removeEdge(from, to)
	return out
}

// RemoveEvent returns a graph without the event, its metadata, and every
// edge touching it. Removing an absent event is a no-op.
func (g *Graph) RemoveEvent(id string) *Graph {
	out := g.clone()
	delete(out.events, id)
	delete(out.eventData, id)
	for from := range out.dependencies[id] {
		out.removeEdge(from, id)
	}
	for to := range out.dependents[id] {
		out.removeEdge(id, to)
	}
	return out
}

// removeEdge deletes from → to from both indices, pruning empty sets so a
// removed edge leaves no trace.
func (g *Graph) removeEdge(from, to string) {
	if set, ok := g.dependencies[to]; ok {
		delete(set, from)
		if len(set) == 0 {
			delete(g.dependencies, to)
		}
	}
	if set, ok := g.dependents[from]; ok {
		delete(set, to)
		if len(set) == 0 {
			delete(g.dependents, from)
		}
	}
}

// UpdateEventMetadata returns a graph where the event's metadata is replaced
// (not merged). Returns ErrUnknownEvent if the event does not exist.
func (g *Graph) UpdateEventMetadata(id string, meta Metadata) (*Graph, error) {
	if !g.Contains(id) {
		return nil, fmt.Errorf("update metadata: %w: %s", ErrUnknownEvent, id)
	}
	out := g.clone()
	if meta == nil {
		meta = Metadata{}
	}
	out.eventData[id] = maps.Clone(meta)
	return out, nil
}

// EventMetadata returns a copy of the event's metadata. The second return is
// false when the event is not in the graph.
func (g *Graph) EventMetadata(id string) (Metadata, bool) {
	meta, ok := g.eventData[id]
	if !ok {
		return nil, false
	}
	return maps.Clone(meta), true
}

// Contains reports whether the event is in the graph.
func (g *Graph) Contains(id string) bool {
	_, ok := g.events[id]
	return ok
}

// Events returns all event identifiers in sorted order.
func (g *Graph) Events() []string {
	return slices.Sorted(maps.Keys(g.events))
}

// EventCount returns the number of events.
func (g *Graph) EventCount() int { return len(g.events) }

// DependencyCount returns the total number of dependency edges.
func (g *Graph) DependencyCount() int {
	n := 0
	for _, set := range g.dependencies {
		n += len(set)
	}
	return n
}

// Dependencies returns the immediate predecessors of the event, sorted.
// Returns nil for events with no predecessors or absent events.
func (g *Graph) Dependencies(id string) []string {
	return sortedSet(g.dependencies[id])
}

// Dependents returns the immediate successors of the event, sorted.
// Returns nil for events with no successors or absent events.
func (g *Graph) Dependents(id string) []string {
	return sortedSet(g.dependents[id])
}

func sortedSet(set eventSet) []string {
	if len(set) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(set))
}
