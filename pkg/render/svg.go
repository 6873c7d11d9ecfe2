package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/causeway/pkg/causal"
)

// ToSVG renders a causal graph as a self-contained SVG document using the
// built-in layered layout. Edges are drawn as lines with an arrowhead
// marker; events as circles with centered labels. Edges whose endpoints were
// not positioned by the layout (events unreachable from any root) are
// skipped. An empty or fully-unpositioned graph still yields a minimal valid
// document sized to twice the margin.
func ToSVG(g *causal.Graph, opts Options) string {
	opts = opts.withDefaults()

	events := g.Events()
	var edges []Edge
	for _, to := range events {
		for _, from := range g.Dependencies(to) {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	positions := Layout(events, edges, opts)

	width, height := 2*opts.Margin, 2*opts.Margin
	for _, p := range positions {
		if p.X+opts.Margin > width {
			width = p.X + opts.Margin
		}
		if p.Y+opts.Margin > height {
			height = p.Y + opts.Margin
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+"\n", width, height)
	buf.WriteString("  <defs>\n")
	buf.WriteString(`    <marker id="arrow" markerWidth="10" markerHeight="10" refX="9" refY="3" orient="auto" markerUnits="strokeWidth">` + "\n")
	buf.WriteString(`      <path d="M0,0 L0,6 L9,3 z" fill="#555"/>` + "\n")
	buf.WriteString("    </marker>\n")
	buf.WriteString("  </defs>\n")

	for _, e := range edges {
		from, okFrom := positions[e.From]
		to, okTo := positions[e.To]
		if !okFrom || !okTo {
			continue
		}
		fmt.Fprintf(&buf,
			`  <line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#555" stroke-width="1.5" marker-end="url(#arrow)"/>`+"\n",
			from.X, from.Y, to.X, to.Y)
	}

	for _, id := range events {
		p, ok := positions[id]
		if !ok {
			continue
		}
		buf.WriteString("  <g>\n")
		fmt.Fprintf(&buf,
			`    <circle cx="%d" cy="%d" r="%d" fill="white" stroke="#333" stroke-width="1.5"/>`+"\n",
			p.X, p.Y, opts.NodeRadius)
		fmt.Fprintf(&buf,
			`    <text x="%d" y="%d" text-anchor="middle" dominant-baseline="middle" font-size="12" font-family="monospace">%s</text>`+"\n",
			p.X, p.Y, escapeText(id))
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.String()
}

// escapeText XML-escapes an event identifier for use in a text element.
func escapeText(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
