package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/causeway/pkg/cache"
	"github.com/matzehuels/causeway/pkg/causal"
	"github.com/matzehuels/causeway/pkg/graphio"
	"github.com/matzehuels/causeway/pkg/hyperfile"
	"github.com/matzehuels/causeway/pkg/pipeline"
)

// importCommand creates the import command for turning hypergraph manifests
// into graph files.
func (c *CLI) importCommand() *cobra.Command {
	var output string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "import [manifest.toml]",
		Short: "Import a hypergraph manifest into a causal graph",
		Long: `Import reads a TOML hypergraph manifest and expands each hyperedge
into pairwise dependencies, producing a causal graph JSON file.

Members of a hyperedge are ordered lexicographically; each member depends
on every member that sorts before it. Expanded graphs are cached by
manifest content, so re-importing an unchanged manifest skips the
expansion.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(cmd.Context(), args[0], output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: manifest name with .json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "re-expand even if the manifest is cached")
	return cmd
}

func (c *CLI) runImport(ctx context.Context, input, output string, noCache bool) error {
	c.Logger.Infof("Importing %s", input)

	data, err := os.ReadFile(input)
	if err != nil {
		printError("Failed to read manifest: %s", err)
		return err
	}

	store, err := newCache(noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	key := cache.GraphKey(cache.Hash(data))
	encoded, cached, err := store.Get(ctx, key)
	if err != nil {
		c.Logger.Warnf("Cache read failed: %s", err)
		cached = false
	}
	if cached {
		// A stale or corrupt entry falls back to re-expansion.
		if _, err := graphio.ReadGraph(bytes.NewReader(encoded)); err != nil {
			c.Logger.Warnf("Discarding corrupt cache entry: %s", err)
			cached = false
		}
	}

	if !cached {
		manifest, err := hyperfile.Parse(data)
		if err != nil {
			printError("Failed to read manifest: %s", err)
			return err
		}
		c.Logger.Debugf("Manifest: %d vertices, %d hyperedges",
			len(manifest.Vertices()), len(manifest.Hyperedges()))

		g, err := causal.FromHypergraph(manifest)
		if err != nil {
			printError("Failed to expand hypergraph: %s", err)
			return err
		}
		encoded, err = graphio.MarshalGraph(g)
		if err != nil {
			return fmt.Errorf("encode graph: %w", err)
		}
		if err := store.Set(ctx, key, encoded, pipeline.DefaultCacheTTL); err != nil {
			c.Logger.Warnf("Cache write failed: %s", err)
		}
	}

	g, err := graphio.ReadGraph(bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("decode graph: %w", err)
	}

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".json"
	}
	if err := os.WriteFile(output, encoded, 0o644); err != nil {
		return fmt.Errorf("write graph: %w", err)
	}

	printSuccess("Imported %s", input)
	printFile(output)
	printGraphStats(g.EventCount(), g.DependencyCount(), cached)
	printNextStep("Render it", fmt.Sprintf("causeway render %s", output))
	return nil
}
