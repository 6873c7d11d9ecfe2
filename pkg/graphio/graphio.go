package graphio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/causeway/pkg/causal"
)

// MarshalGraph converts a causal graph to JSON bytes.
func MarshalGraph(g *causal.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a causal graph as indented JSON to w.
func WriteGraph(g *causal.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromCausal(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraphFile writes a causal graph to a JSON file with 0644 permissions.
func WriteGraphFile(g *causal.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// ReadGraph decodes a JSON graph from r into a causal graph.
func ReadGraph(r io.Reader) (*causal.Graph, error) {
	var gw Graph
	if err := json.NewDecoder(r).Decode(&gw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToCausal(gw)
}

// ReadGraphFile reads a JSON file and returns the decoded causal graph.
func ReadGraphFile(path string) (*causal.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}
