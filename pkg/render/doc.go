// Package render turns causal graphs into visual output.
//
// It owns a small layered layout (breadth-first distance from the root
// events) plus two text emitters, [ToDOT] and [ToSVG], that need no external
// tooling. [RenderSVG] and [RenderPNG] additionally rasterize the DOT output
// through Graphviz for publication-quality diagrams.
//
// All emitters tolerate cyclic graphs: layout visits each event at most once,
// and both text formats stay well-formed regardless of the graph's shape.
package render
