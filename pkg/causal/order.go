package causal

// TopologicalSort orders events so that every dependency's source precedes
// its target, using Kahn's algorithm. Zero-in-degree events are seeded in
// sorted order and successors are visited in sorted order, so the result is
// deterministic for a given graph.
//
// The second return is true when a complete ordering exists. When the graph
// contains a cycle no ordering exists and TopologicalSort returns
// (nil, false); this is a normal outcome, not an error. An empty graph
// yields an empty (non-nil) ordering with ok == true — never the cyclic
// signal.
func (g *Graph) TopologicalSort() ([]string, bool) {
	inDegree := make(map[string]int, len(g.events))
	var queue []string
	for _, id := range g.Events() {
		inDegree[id] = len(g.dependencies[id])
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, len(g.events))
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		order = append(order, curr)

		for _, succ := range g.Dependents(curr) {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				queue = append(queue, succ)
			}
		}
	}

	if len(order) != len(g.events) {
		return nil, false
	}
	return order, true
}

// Acyclic reports whether a complete topological ordering exists.
func (g *Graph) Acyclic() bool {
	_, ok := g.TopologicalSort()
	return ok
}
