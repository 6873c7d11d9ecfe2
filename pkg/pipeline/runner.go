package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/causeway/pkg/cache"
	"github.com/matzehuels/causeway/pkg/causal"
	"github.com/matzehuels/causeway/pkg/graphio"
	"github.com/matzehuels/causeway/pkg/observability"
	"github.com/matzehuels/causeway/pkg/render"
)

// Runner executes the render pipeline with caching.
type Runner struct {
	cache  cache.Cache
	logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil cache disables caching.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Runner{cache: c, logger: logger}
}

// Execute renders the requested artifacts for g.
//
// The graph's canonical JSON form is hashed once; each artifact is looked
// up under a key derived from that hash, the format, and the layout
// options, and rendered only on a miss.
func (r *Runner) Execute(ctx context.Context, g *causal.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger
	if logger == nil {
		logger = opts.Logger
	}

	encoded, err := graphio.MarshalGraph(g)
	if err != nil {
		return nil, fmt.Errorf("marshal graph: %w", err)
	}

	result := &Result{
		GraphHash: cache.Hash(encoded),
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		Stats: Stats{
			EventCount:      g.EventCount(),
			DependencyCount: g.DependencyCount(),
		},
		CacheInfo: CacheInfo{Hits: make(map[string]bool, len(opts.Formats))},
	}

	renderOpts := opts.renderOptions()
	start := time.Now()
	observability.Render().OnRenderStart(ctx, opts.Formats, result.Stats.EventCount)

	for _, format := range opts.Formats {
		key := cache.ArtifactKey(result.GraphHash, format, renderOpts)

		if !opts.Refresh {
			data, ok, err := r.cache.Get(ctx, key)
			if err != nil {
				logger.Warn("cache read failed", "format", format, "error", err)
			} else if ok {
				logger.Debug("artifact cache hit", "format", format)
				observability.Cache().OnCacheHit(ctx, format)
				result.Artifacts[format] = data
				result.CacheInfo.Hits[format] = true
				continue
			}
		}
		observability.Cache().OnCacheMiss(ctx, format)

		data, err := r.renderFormat(ctx, g, encoded, format, renderOpts)
		if err != nil {
			observability.Render().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data
		result.CacheInfo.Hits[format] = false

		if err := r.cache.Set(ctx, key, data, DefaultCacheTTL); err != nil {
			logger.Warn("cache write failed", "format", format, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, format, len(data))
		}
	}

	result.Stats.RenderTime = time.Since(start)
	observability.Render().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)
	logger.Debug("pipeline complete",
		"events", result.Stats.EventCount,
		"dependencies", result.Stats.DependencyCount,
		"formats", len(opts.Formats),
		"duration", result.Stats.RenderTime)
	return result, nil
}

func (r *Runner) renderFormat(ctx context.Context, g *causal.Graph, encoded []byte, format string, opts render.Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return encoded, nil
	case FormatDOT:
		return []byte(render.ToDOT(g, opts)), nil
	case FormatSVG:
		return []byte(render.ToSVG(g, opts)), nil
	case FormatPNG:
		return render.RenderPNG(ctx, render.ToDOT(g, opts))
	default:
		return nil, fmt.Errorf("invalid format: %q", format)
	}
}
