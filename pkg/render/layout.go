package render

// Default geometry for layouts and the SVG emitter.
const (
	DefaultNodeRadius = 20
	DefaultXGap       = 100
	DefaultYGap       = 100
	DefaultMargin     = 50

	// DefaultName is the digraph name used by ToDOT when none is set.
	DefaultName = "causal_graph"
)

// Options configures layout geometry and DOT/SVG emission.
// The zero value is usable; unset fields fall back to the defaults above.
type Options struct {
	Name       string
	NodeRadius int
	XGap       int
	YGap       int
	Margin     int
}

func (o Options) withDefaults() Options {
	if o.Name == "" {
		o.Name = DefaultName
	}
	if o.NodeRadius == 0 {
		o.NodeRadius = DefaultNodeRadius
	}
	if o.XGap == 0 {
		o.XGap = DefaultXGap
	}
	if o.YGap == 0 {
		o.YGap = DefaultYGap
	}
	if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	return o
}

// Edge is a directed edge between two events, used as layout input.
type Edge struct {
	From string
	To   string
}

// Point is a node position computed by Layout.
type Point struct {
	X int
	Y int
}

// Layout assigns 2-D coordinates to events. Each event's layer is its
// breadth-first distance from the nearest root, where roots are the events
// with no incoming edge in edges. If no roots exist (every event has an
// incoming edge, which happens on fully cyclic input), every event is
// treated as a root so the expansion still terminates and covers the graph.
//
// Events are visited at most once, so cycles cannot cause re-expansion.
// Within a layer, events sit left-to-right in first-discovery order. Events
// unreachable from any root receive no position and are absent from the
// result; callers skip them when rendering.
func Layout(events []string, edges []Edge, opts Options) map[string]Point {
	opts = opts.withDefaults()

	known := make(map[string]bool, len(events))
	for _, id := range events {
		known[id] = true
	}

	succs := make(map[string][]string, len(events))
	inDegree := make(map[string]int, len(events))
	for _, e := range edges {
		if !known[e.From] || !known[e.To] {
			continue
		}
		succs[e.From] = append(succs[e.From], e.To)
		inDegree[e.To]++
	}

	var roots []string
	for _, id := range events {
		if inDegree[id] == 0 {
			roots = append(roots, id)
		}
	}
	if len(roots) == 0 {
		roots = events
	}

	positions := make(map[string]Point, len(events))
	visited := make(map[string]bool, len(events))
	frontier := roots
	for layer := 0; len(frontier) > 0; layer++ {
		var next []string
		col := 0
		for _, id := range frontier {
			if visited[id] {
				continue
			}
			visited[id] = true
			positions[id] = Point{
				X: opts.Margin + col*opts.XGap,
				Y: opts.Margin + layer*opts.YGap,
			}
			col++
			next = append(next, succs[id]...)
		}
		frontier = next
	}
	return positions
}
