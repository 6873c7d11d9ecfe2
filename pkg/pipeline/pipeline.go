// Package pipeline provides the import → render pipeline for Causeway.
//
// It centralizes the steps shared by the CLI and the HTTP API: turning a
// hypergraph manifest or serialized graph into a causal graph, then
// producing DOT/SVG/PNG/JSON artifacts, with per-artifact caching keyed by
// the graph's content hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, g, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/causeway/pkg/render"
)

// Output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// DefaultCacheTTL is how long rendered artifacts stay cached. Keys embed the
// graph's content hash, so staleness is impossible; the TTL only bounds
// storage growth.
const DefaultCacheTTL = 7 * 24 * time.Hour

// Options configures a pipeline run.
type Options struct {
	// Render options
	Formats    []string `json:"formats,omitempty"`
	Name       string   `json:"name,omitempty"`
	NodeRadius int      `json:"node_radius,omitempty"`
	XGap       int      `json:"x_gap,omitempty"`
	YGap       int      `json:"y_gap,omitempty"`
	Margin     int      `json:"margin,omitempty"`

	// Refresh bypasses cache reads (results are still written back).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return fmt.Errorf("invalid format: %q (must be one of: dot, svg, png, json)", f)
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// renderOptions converts the layout-affecting fields to render.Options.
// Only these fields participate in artifact cache keys.
func (o *Options) renderOptions() render.Options {
	return render.Options{
		Name:       o.Name,
		NodeRadius: o.NodeRadius,
		XGap:       o.XGap,
		YGap:       o.YGap,
		Margin:     o.Margin,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// GraphHash is the content hash of the serialized graph.
	GraphHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	EventCount      int
	DependencyCount int
	RenderTime      time.Duration
}

// CacheInfo tracks cache hits per format.
type CacheInfo struct {
	Hits map[string]bool
}

// AllHit reports whether every requested artifact came from cache.
func (c CacheInfo) AllHit() bool {
	if len(c.Hits) == 0 {
		return false
	}
	for _, hit := range c.Hits {
		if !hit {
			return false
		}
	}
	return true
}
