package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/causeway/pkg/causal"
)

func TestToSVGChain(t *testing.T) {
	g := buildGraph(t, [][2]string{{"a", "b"}}, nil)

	svg := ToSVG(g, Options{})

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`<marker id="arrow"`,
		`marker-end="url(#arrow)"`,
		"<circle",
		">a</text>",
		">b</text>",
		"</svg>",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG output missing %q:\n%s", want, svg)
		}
	}
	if got, want := strings.Count(svg, "<line"), 1; got != want {
		t.Errorf("line count = %d, want %d", got, want)
	}
	if got, want := strings.Count(svg, "<circle"), 2; got != want {
		t.Errorf("circle count = %d, want %d", got, want)
	}
}

func TestToSVGEmptyGraph(t *testing.T) {
	svg := ToSVG(causal.New(), Options{})

	// Minimal document sized to twice the margin.
	if !strings.Contains(svg, `width="100" height="100"`) {
		t.Errorf("empty SVG should be 100x100:\n%s", svg)
	}
	if strings.Contains(svg, "<circle") || strings.Contains(svg, "<line") {
		t.Errorf("empty SVG should have no shapes:\n%s", svg)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Errorf("SVG not closed:\n%s", svg)
	}
}

func TestToSVGCyclicGraph(t *testing.T) {
	g := buildGraph(t, [][2]string{{"x", "y"}, {"y", "x"}}, nil)

	svg := ToSVG(g, Options{})
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Errorf("SVG malformed on cyclic graph:\n%s", svg)
	}
	if got, want := strings.Count(svg, "<circle"), 2; got != want {
		t.Errorf("circle count = %d, want %d", got, want)
	}
}

func TestToSVGSkipsUnpositionedEdges(t *testing.T) {
	// u↔v are unreachable from the root a, so they get no positions and
	// their edges are skipped; the document must still be valid.
	g := buildGraph(t, [][2]string{{"u", "v"}, {"v", "u"}}, nil)
	g = g.AddEvent("a", nil)

	svg := ToSVG(g, Options{})
	if got := strings.Count(svg, "<line"); got != 0 {
		t.Errorf("line count = %d, want 0 (endpoints unpositioned)", got)
	}
	if got, want := strings.Count(svg, "<circle"), 1; got != want {
		t.Errorf("circle count = %d, want %d (only the root is positioned)", got, want)
	}
}

func TestToSVGEscapesLabels(t *testing.T) {
	g := causal.New().AddEvent("a<b", nil)
	svg := ToSVG(g, Options{})
	if strings.Contains(svg, ">a<b<") {
		t.Errorf("label not escaped:\n%s", svg)
	}
	if !strings.Contains(svg, "a&lt;b") {
		t.Errorf("escaped label missing:\n%s", svg)
	}
}

func TestToSVGCanvasSize(t *testing.T) {
	g := buildGraph(t, [][2]string{{"a", "b"}, {"b", "c"}}, nil)

	svg := ToSVG(g, Options{})
	// Three layers: max Y = 50 + 2*100 = 250, plus margin = 300.
	if !strings.Contains(svg, `height="300"`) {
		t.Errorf("canvas height wrong:\n%s", svg)
	}
	if !strings.Contains(svg, `width="100"`) {
		t.Errorf("canvas width wrong:\n%s", svg)
	}
}
