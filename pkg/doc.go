// Package pkg provides the core libraries for Causeway causal graph analysis.
//
// # Overview
//
// Causeway models systems of events with happens-before relationships as an
// immutable directed graph, answers ancestry and ordering queries over it,
// and renders it as a layered diagram. The pkg directory is organized into
// these areas:
//
//  1. [causal] - Domain logic (the event graph, queries, ordering, hypergraph import)
//  2. [render] - Layered layout, DOT emission, SVG output, Graphviz rendering
//  3. [graphio] - Canonical JSON serialization for graphs
//  4. [hyperfile] - TOML hypergraph manifest parsing
//  5. [pipeline] - Orchestration (load → render → cache) shared by CLI and API
//  6. [cache] / [store] - Artifact caching and layout document persistence
//
// # Architecture
//
// The typical data flow through Causeway:
//
//	TOML hypergraph manifest or graph JSON
//	         ↓
//	    [hyperfile] / [graphio] (parse input)
//	         ↓
//	    [causal] package (graph structure + queries)
//	         ↓
//	    [render] package (layout + DOT/SVG)
//	         ↓
//	    DOT/SVG/PNG/JSON output
//
// # Quick Start
//
// Build a graph and render it:
//
//	import (
//	    "github.com/matzehuels/causeway/pkg/causal"
//	    "github.com/matzehuels/causeway/pkg/render"
//	)
//
//	g := causal.New()
//	g = g.AddEvent("deploy", nil)
//	g = g.AddEvent("outage", nil)
//	g, _ = g.AddDependency("deploy", "outage")
//
//	svg := render.ToSVG(g, render.Options{})
//
// Query causal structure:
//
//	depth, _ := g.CausalDepth("outage")
//	order, acyclic := g.TopologicalSort()
//	ancestors := g.Ancestors("outage")
//
// # Main Packages
//
// [causal] - The immutable event graph. Every mutation returns a new graph
// value. Supports ancestry queries, causal depth and width, deterministic
// topological ordering with cycle detection, and hypergraph expansion.
//
// [render] - Visualization. A built-in BFS layered layout drives the SVG
// output; DOT output can also be rendered through Graphviz for PNG.
//
// [graphio] - Deterministic JSON wire format; the same bytes always hash to
// the same value, which the cache layer relies on.
//
// [hyperfile] - TOML manifests declaring vertices and hyperedges, expanded
// into pairwise dependencies on import.
//
// [pipeline] - The render pipeline with per-artifact caching, used by both
// the CLI and the HTTP API.
//
// [cache] - Byte-oriented cache backends: file, Redis, null.
//
// [store] - Layout document persistence: memory and MongoDB backends.
//
// [errors] - Structured error codes shared by the CLI and the HTTP API.
//
// [observability] - Optional hooks for render and cache instrumentation.
//
// [causal]: https://pkg.go.dev/github.com/matzehuels/causeway/pkg/causal
// [render]: https://pkg.go.dev/github.com/matzehuels/causeway/pkg/render
// [graphio]: https://pkg.go.dev/github.com/matzehuels/causeway/pkg/graphio
// [hyperfile]: https://pkg.go.dev/github.com/matzehuels/causeway/pkg/hyperfile
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/causeway/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/causeway/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/causeway/pkg/store
// [errors]: https://pkg.go.dev/github.com/matzehuels/causeway/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/causeway/pkg/observability
package pkg
