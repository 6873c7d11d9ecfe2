package causal

import (
	"errors"
	"slices"
	"testing"
)

// diamond builds a→b, a→c, b→d, c→d.
func diamond(t *testing.T) *Graph {
	t.Helper()
	g := New()
	for _, id := range []string{"a", "b", "c", "d"} {
		g = g.AddEvent(id, nil)
	}
	for _, e := range [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}} {
		g = mustDep(t, g, e[0], e[1])
	}
	return g
}

// twoCycle builds x→y and y→x.
func twoCycle(t *testing.T) *Graph {
	t.Helper()
	g := New().AddEvent("x", nil).AddEvent("y", nil)
	g = mustDep(t, g, "x", "y")
	g = mustDep(t, g, "y", "x")
	return g
}

func TestAncestorsDescendants(t *testing.T) {
	g := chain(t)

	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{"AncestorsOfSink", g.Ancestors("e3"), []string{"e1", "e2"}},
		{"AncestorsOfSource", g.Ancestors("e1"), nil},
		{"DescendantsOfSource", g.Descendants("e1"), []string{"e2", "e3"}},
		{"DescendantsOfSink", g.Descendants("e3"), nil},
		{"AncestorsOfAbsent", g.Ancestors("ghost"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !slices.Equal(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestAncestorsDiamondDeduplicates(t *testing.T) {
	g := diamond(t)
	if got, want := g.Ancestors("d"), []string{"a", "b", "c"}; !slices.Equal(got, want) {
		t.Errorf("Ancestors(d) = %v, want %v", got, want)
	}
}

func TestAncestorsTerminatesOnCycle(t *testing.T) {
	g := twoCycle(t)
	if got, want := g.Ancestors("x"), []string{"y"}; !slices.Equal(got, want) {
		t.Errorf("Ancestors(x) = %v, want %v", got, want)
	}
}

func TestIsCausalPredecessorTransitive(t *testing.T) {
	g := chain(t)

	if !g.IsCausalPredecessor("e1", "e2") || !g.IsCausalPredecessor("e2", "e3") {
		t.Fatal("direct predecessors not detected")
	}
	if !g.IsCausalPredecessor("e1", "e3") {
		t.Error("IsCausalPredecessor is not transitive: e1 should precede e3")
	}
	if g.IsCausalPredecessor("e3", "e1") {
		t.Error("predecessor relation should not hold in reverse")
	}
}

func TestDegreesAndSourcesSinks(t *testing.T) {
	g := diamond(t)

	if got := g.InDegree("d"); got != 2 {
		t.Errorf("InDegree(d) = %d, want 2", got)
	}
	if got := g.OutDegree("a"); got != 2 {
		t.Errorf("OutDegree(a) = %d, want 2", got)
	}
	if got := g.InDegree("ghost"); got != 0 {
		t.Errorf("InDegree(ghost) = %d, want 0", got)
	}
	if got, want := g.SourceEvents(), []string{"a"}; !slices.Equal(got, want) {
		t.Errorf("SourceEvents = %v, want %v", got, want)
	}
	if got, want := g.SinkEvents(), []string{"d"}; !slices.Equal(got, want) {
		t.Errorf("SinkEvents = %v, want %v", got, want)
	}
}

func TestCausalDepthChain(t *testing.T) {
	g := chain(t)

	for id, want := range map[string]int{"e1": 0, "e2": 1, "e3": 2} {
		got, err := g.CausalDepth(id)
		if err != nil {
			t.Fatalf("CausalDepth(%s): %v", id, err)
		}
		if got != want {
			t.Errorf("CausalDepth(%s) = %d, want %d", id, got, want)
		}
	}
}

func TestCausalDepthLongestPath(t *testing.T) {
	// d is reachable from a in one hop via nothing, but the longest chain
	// through the diamond is a→b→d, so depth(d) = 2.
	g := diamond(t)
	got, err := g.CausalDepth("d")
	if err != nil {
		t.Fatalf("CausalDepth(d): %v", err)
	}
	if got != 2 {
		t.Errorf("CausalDepth(d) = %d, want 2", got)
	}
}

func TestCausalDepthCycle(t *testing.T) {
	g := twoCycle(t)

	if _, err := g.CausalDepth("x"); !errors.Is(err, ErrCycle) {
		t.Errorf("CausalDepth(x) = %v, want ErrCycle", err)
	}

	var cerr *CycleError
	_, err := g.CausalDepth("y")
	if !errors.As(err, &cerr) {
		t.Fatalf("CausalDepth(y) = %v, want *CycleError", err)
	}
	if cerr.Event == "" {
		t.Error("CycleError does not name an event")
	}
}

func TestCausalDepthDownstreamOfCycle(t *testing.T) {
	// z is not on the cycle but depends on it; the depth computation must
	// still fail rather than loop or fabricate a depth.
	g := twoCycle(t).AddEvent("z", nil)
	g = mustDep(t, g, "y", "z")

	if _, err := g.CausalDepth("z"); !errors.Is(err, ErrCycle) {
		t.Errorf("CausalDepth(z) = %v, want ErrCycle", err)
	}
}

func TestEventsAtDepth(t *testing.T) {
	g := diamond(t)

	tests := []struct {
		depth int
		want  []string
	}{
		{0, []string{"a"}},
		{1, []string{"b", "c"}},
		{2, []string{"d"}},
		{7, nil},
	}
	for _, tt := range tests {
		got, err := g.EventsAtDepth(tt.depth)
		if err != nil {
			t.Fatalf("EventsAtDepth(%d): %v", tt.depth, err)
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("EventsAtDepth(%d) = %v, want %v", tt.depth, got, tt.want)
		}
	}
}

func TestEventsAtDepthCyclic(t *testing.T) {
	g := twoCycle(t)
	if _, err := g.EventsAtDepth(0); !errors.Is(err, ErrCycle) {
		t.Errorf("EventsAtDepth on cyclic graph = %v, want ErrCycle", err)
	}
}

func TestCausalWidth(t *testing.T) {
	g := diamond(t)
	width, err := g.CausalWidth()
	if err != nil {
		t.Fatalf("CausalWidth: %v", err)
	}
	want := map[int]int{0: 1, 1: 2, 2: 1}
	if len(width) != len(want) {
		t.Fatalf("CausalWidth = %v, want %v", width, want)
	}
	for d, n := range want {
		if width[d] != n {
			t.Errorf("width[%d] = %d, want %d", d, width[d], n)
		}
	}
}

func TestCausalCone(t *testing.T) {
	g := diamond(t)
	if got, want := g.CausalCone("b"), []string{"a", "d"}; !slices.Equal(got, want) {
		t.Errorf("CausalCone(b) = %v, want %v", got, want)
	}
}

func TestStatsEmptyGraph(t *testing.T) {
	s, err := New().Stats()
	if err != nil {
		t.Fatalf("Stats on empty graph: %v", err)
	}
	if s.EventCount != 0 || s.DependencyCount != 0 || s.MaxDepth != 0 {
		t.Errorf("empty graph stats = %+v, want zeros", s)
	}
	if s.AvgInDegree != 0 || s.AvgOutDegree != 0 {
		t.Errorf("averages = %v/%v, want 0/0", s.AvgInDegree, s.AvgOutDegree)
	}
	if !s.Acyclic {
		t.Error("empty graph should be acyclic")
	}
}

func TestStatsDiamond(t *testing.T) {
	g := diamond(t)
	s, err := g.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	want := Stats{
		EventCount:      4,
		DependencyCount: 4,
		SourceCount:     1,
		SinkCount:       1,
		MaxDepth:        2,
		AvgInDegree:     1,
		AvgOutDegree:    1,
		Acyclic:         true,
	}
	if s != want {
		t.Errorf("Stats = %+v, want %+v", s, want)
	}
}

func TestStatsCyclicGraph(t *testing.T) {
	if _, err := twoCycle(t).Stats(); !errors.Is(err, ErrCycle) {
		t.Errorf("Stats on cyclic graph = %v, want ErrCycle", err)
	}
}

func TestSelfDependency(t *testing.T) {
	// A self-edge is accepted structurally and treated as a trivial cycle
	// by the depth and ordering algorithms.
	g := New().AddEvent("a", nil)
	g = mustDep(t, g, "a", "a")

	if _, err := g.CausalDepth("a"); !errors.Is(err, ErrCycle) {
		t.Errorf("CausalDepth(a) = %v, want ErrCycle", err)
	}
	if _, ok := g.TopologicalSort(); ok {
		t.Error("TopologicalSort should report no ordering for a self-loop")
	}
}
