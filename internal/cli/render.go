package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/causeway/pkg/graphio"
	"github.com/matzehuels/causeway/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string // output file path or base path for multiple formats
	name       string // DOT graph name
	nodeRadius int    // node circle radius in the built-in SVG layout
	xGap       int    // horizontal gap between nodes
	yGap       int    // vertical gap between layers
	margin     int    // canvas margin
	noCache    bool   // disable artifact caching
	refresh    bool   // bypass cache reads, re-render everything
}

// renderCommand creates the render command for generating graph artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render a causal graph to DOT, SVG, PNG, or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			return c.runRender(cmd, args[0], formats, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, json (comma-separated)")
	cmd.Flags().StringVar(&opts.name, "name", "", "graph name used in DOT output")
	cmd.Flags().IntVar(&opts.nodeRadius, "node-radius", 0, "node radius in the built-in SVG layout")
	cmd.Flags().IntVar(&opts.xGap, "x-gap", 0, "horizontal gap between nodes")
	cmd.Flags().IntVar(&opts.yGap, "y-gap", 0, "vertical gap between layers")
	cmd.Flags().IntVar(&opts.margin, "margin", 0, "canvas margin")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable artifact caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")

	return cmd
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

func (c *CLI) runRender(cmd *cobra.Command, input string, formats []string, opts *renderOpts) error {
	c.Logger.Infof("Rendering %s", input)

	g, err := graphio.ReadGraphFile(input)
	if err != nil {
		printError("Failed to load graph: %s", err)
		return err
	}
	c.Logger.Infof("Loaded graph: %d events, %d dependencies", g.EventCount(), g.DependencyCount())

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}

	spin := newSpinnerWithContext(cmd.Context(), "Rendering...")
	spin.Start()
	result, err := runner.Execute(cmd.Context(), g, pipeline.Options{
		Formats:    formats,
		Name:       opts.name,
		NodeRadius: opts.nodeRadius,
		XGap:       opts.xGap,
		YGap:       opts.yGap,
		Margin:     opts.margin,
		Refresh:    opts.refresh,
		Logger:     c.Logger,
	})
	if err != nil {
		spin.StopWithError(fmt.Sprintf("Render failed: %s", err))
		return err
	}
	spin.Stop()

	base := basePath(opts.output, input)
	for _, format := range formats {
		path := opts.output
		if path == "" || len(formats) > 1 {
			path = base + "." + format
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	printSuccess("Rendered %d artifact(s)", len(formats))
	printGraphStats(g.EventCount(), g.DependencyCount(), result.CacheInfo.AllHit())
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output carries a
// known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
