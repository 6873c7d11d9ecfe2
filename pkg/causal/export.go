package causal

// AdjacencyList exports the graph as a mapping from each event to the sorted
// list of its immediate successors. Events without successors map to an
// empty list, so the result always has one entry per event.
func (g *Graph) AdjacencyList() map[string][]string {
	out := make(map[string][]string, len(g.events))
	for id := range g.events {
		succs := g.Dependents(id)
		if succs == nil {
			succs = []string{}
		}
		out[id] = succs
	}
	return out
}
