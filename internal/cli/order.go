package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/causeway/pkg/graphio"
)

// orderCommand creates the order command for printing a topological order.
func (c *CLI) orderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "order [graph.json]",
		Short: "Print a valid causal order of all events",
		Long: `Order prints the events in a topological order: every event appears
after all of its causal predecessors. Ties are broken lexicographically,
so the order is deterministic.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graphio.ReadGraphFile(args[0])
			if err != nil {
				printError("Failed to load graph: %s", err)
				return err
			}

			order, acyclic := g.TopologicalSort()
			if !acyclic {
				printError("Graph contains a cycle; no causal order exists")
				return fmt.Errorf("graph is cyclic")
			}

			for i, id := range order {
				fmt.Printf("%s %s\n", StyleDim.Render(fmt.Sprintf("%3d", i+1)), StyleValue.Render(id))
			}
			return nil
		},
	}
}
