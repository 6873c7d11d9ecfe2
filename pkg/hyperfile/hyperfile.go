// Package hyperfile reads hypergraph manifests: TOML files declaring the
// vertices and hyperedges of a hypergraph. A parsed [Manifest] implements
// the causal.Hypergraph collaborator interface, so it plugs straight into
// causal.FromHypergraph.
//
// Manifest format:
//
//	vertices = ["compile", "test", "package"]
//
//	[[hyperedge]]
//	members = ["compile", "test"]
//
//	[[hyperedge]]
//	members = ["compile", "test", "package"]
package hyperfile

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Manifest is a parsed hypergraph manifest.
type Manifest struct {
	vertices   []string
	hyperedges [][]string
}

// Vertices returns the declared vertex identifiers.
func (m *Manifest) Vertices() []string { return m.vertices }

// Hyperedges returns each declared hyperedge as its member set.
func (m *Manifest) Hyperedges() [][]string { return m.hyperedges }

// document mirrors the TOML structure.
type document struct {
	Vertices   []string    `toml:"vertices"`
	Hyperedges []hyperedge `toml:"hyperedge"`
}

type hyperedge struct {
	Members []string `toml:"members"`
}

// Parse decodes and validates a TOML hypergraph manifest. Every hyperedge
// must be non-empty and may only reference declared vertices.
func Parse(data []byte) (*Manifest, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	declared := make(map[string]bool, len(doc.Vertices))
	for _, v := range doc.Vertices {
		if v == "" {
			return nil, fmt.Errorf("parse manifest: empty vertex identifier")
		}
		declared[v] = true
	}

	m := &Manifest{vertices: doc.Vertices}
	for i, e := range doc.Hyperedges {
		if len(e.Members) == 0 {
			return nil, fmt.Errorf("parse manifest: hyperedge %d has no members", i)
		}
		for _, member := range e.Members {
			if !declared[member] {
				return nil, fmt.Errorf("parse manifest: hyperedge %d references undeclared vertex %q", i, member)
			}
		}
		m.hyperedges = append(m.hyperedges, e.Members)
	}
	return m, nil
}

// ReadFile reads and parses a hypergraph manifest from disk.
func ReadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}
