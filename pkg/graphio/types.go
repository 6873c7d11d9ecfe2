// Package graphio is the canonical serialization format for causal graphs.
// It is used for CLI artifacts, API responses, and stored layout documents.
//
// The format is human-readable and round-trip faithful: import → transform →
// export → re-import produces an identical graph. Output is deterministic —
// events and dependencies are sorted — so serialized graphs hash stably.
package graphio

import (
	"fmt"
	"slices"

	"github.com/matzehuels/causeway/pkg/causal"
)

// Graph is the wire form of a causal graph.
type Graph struct {
	Events       []Event      `json:"events" bson:"events"`
	Dependencies []Dependency `json:"dependencies" bson:"dependencies"`
}

// Event is one graph node with its metadata.
type Event struct {
	ID   string         `json:"id" bson:"id"`
	Meta map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// Dependency is a directed happens-before edge.
type Dependency struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// FromCausal converts a causal graph to its wire form. Events are sorted by
// ID and dependencies by (from, to) for deterministic output.
func FromCausal(g *causal.Graph) Graph {
	ids := g.Events()
	out := Graph{
		Events:       make([]Event, len(ids)),
		Dependencies: make([]Dependency, 0, g.DependencyCount()),
	}
	for i, id := range ids {
		meta, _ := g.EventMetadata(id)
		if len(meta) == 0 {
			meta = nil
		}
		out.Events[i] = Event{ID: id, Meta: meta}
	}
	for _, to := range ids {
		for _, from := range g.Dependencies(to) {
			out.Dependencies = append(out.Dependencies, Dependency{From: from, To: to})
		}
	}
	slices.SortFunc(out.Dependencies, func(a, b Dependency) int {
		if a.From != b.From {
			if a.From < b.From {
				return -1
			}
			return 1
		}
		if a.To < b.To {
			return -1
		}
		if a.To > b.To {
			return 1
		}
		return 0
	})
	return out
}

// ToCausal converts a wire graph back to a causal graph. Dependencies that
// reference undeclared events surface as causal.ErrUnknownEvent.
func ToCausal(gw Graph) (*causal.Graph, error) {
	g := causal.New()
	for _, ev := range gw.Events {
		g = g.AddEvent(ev.ID, causal.Metadata(ev.Meta))
	}
	for _, dep := range gw.Dependencies {
		next, err := g.AddDependency(dep.From, dep.To)
		if err != nil {
			return nil, fmt.Errorf("dependency %s→%s: %w", dep.From, dep.To, err)
		}
		g = next
	}
	return g, nil
}
