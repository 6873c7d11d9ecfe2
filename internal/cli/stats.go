package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/causeway/pkg/causal"
	"github.com/matzehuels/causeway/pkg/graphio"
)

// statsCommand creates the stats command for summarizing a graph.
func (c *CLI) statsCommand() *cobra.Command {
	var showWidth bool

	cmd := &cobra.Command{
		Use:   "stats [graph.json]",
		Short: "Print statistics for a causal graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStats(args[0], showWidth)
		},
	}

	cmd.Flags().BoolVar(&showWidth, "width", false, "show event count per causal depth")
	return cmd
}

func (c *CLI) runStats(input string, showWidth bool) error {
	g, err := graphio.ReadGraphFile(input)
	if err != nil {
		printError("Failed to load graph: %s", err)
		return err
	}

	stats, err := g.Stats()
	var cycleErr *causal.CycleError
	if errors.As(err, &cycleErr) {
		printWarning("Graph contains a cycle through %s", cycleErr.Event)
		printKeyValue("Events", fmt.Sprintf("%d", g.EventCount()))
		printKeyValue("Dependencies", fmt.Sprintf("%d", g.DependencyCount()))
		printKeyValue("Acyclic", "no")
		return err
	}
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render("Graph Statistics"))
	printNewline()
	printKeyValue("Events", fmt.Sprintf("%d", stats.EventCount))
	printKeyValue("Dependencies", fmt.Sprintf("%d", stats.DependencyCount))
	printKeyValue("Sources", fmt.Sprintf("%d", stats.SourceCount))
	printKeyValue("Sinks", fmt.Sprintf("%d", stats.SinkCount))
	printKeyValue("Max depth", fmt.Sprintf("%d", stats.MaxDepth))
	printKeyValue("Avg in-deg", fmt.Sprintf("%.2f", stats.AvgInDegree))
	printKeyValue("Avg out-deg", fmt.Sprintf("%.2f", stats.AvgOutDegree))
	printKeyValue("Acyclic", "yes")

	if showWidth {
		width, err := g.CausalWidth()
		if err != nil {
			return err
		}
		printNewline()
		fmt.Println(StyleTitle.Render("Causal Width"))
		depths := make([]int, 0, len(width))
		for d := range width {
			depths = append(depths, d)
		}
		sort.Ints(depths)
		for _, d := range depths {
			printKeyValue(fmt.Sprintf("Depth %d", d), fmt.Sprintf("%d event(s)", width[d]))
		}
	}
	return nil
}
