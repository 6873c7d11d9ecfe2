package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/causeway/pkg/causal"
)

// ToDOT converts a causal graph to Graphviz DOT format. Each event becomes a
// labeled node declaration; the label is the event identifier, with the
// metadata "rule" value on a second line when present. Each dependency
// becomes one edge statement. The block uses top-to-bottom rank direction
// and opts.Name as the digraph name.
//
// Output is deterministic (events and edges sorted) and well-formed for any
// graph, cyclic or not. Render the result with Graphviz tools or [RenderSVG].
func ToDOT(g *causal.Graph, opts Options) string {
	opts = opts.withDefaults()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %s {\n", opts.Name)
	buf.WriteString("  rankdir=TB;\n")

	for _, id := range g.Events() {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id, nodeLabel(g, id))
	}

	for _, to := range g.Events() {
		for _, from := range g.Dependencies(to) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", from, to)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeLabel returns the display label for an event: the identifier, plus the
// "rule" metadata entry on a second line if one is attached.
func nodeLabel(g *causal.Graph, id string) string {
	meta, ok := g.EventMetadata(id)
	if !ok {
		return id
	}
	if rule, ok := meta["rule"]; ok {
		return fmt.Sprintf("%s\n%v", id, rule)
	}
	return id
}
