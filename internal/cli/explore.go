package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/causeway/pkg/causal"
	"github.com/matzehuels/causeway/pkg/graphio"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreCommand creates the explore command for interactive graph browsing.
func (c *CLI) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [graph.json]",
		Short: "Browse a causal graph interactively",
		Long: `Explore opens an interactive browser over the graph's events. Events
are listed in causal order when the graph is acyclic, alphabetically
otherwise. The detail pane shows each event's depth, predecessors, and
successors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graphio.ReadGraphFile(args[0])
			if err != nil {
				printError("Failed to load graph: %s", err)
				return err
			}
			if g.EventCount() == 0 {
				printInfo("Graph is empty")
				return nil
			}

			model := newExploreModel(g)
			if _, err := tea.NewProgram(model).Run(); err != nil {
				return fmt.Errorf("explore: %w", err)
			}
			return nil
		},
	}
}

// exploreModel is the bubbletea model for interactive event browsing.
type exploreModel struct {
	graph   *causal.Graph
	events  []string // display order
	acyclic bool
	cursor  int
	height  int
	offset  int
}

func newExploreModel(g *causal.Graph) exploreModel {
	events, acyclic := g.TopologicalSort()
	if !acyclic {
		events = g.Events()
	}
	return exploreModel{
		graph:   g,
		events:  events,
		acyclic: acyclic,
		height:  15,
	}
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.events)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "g":
			m.cursor, m.offset = 0, 0
		case "G":
			m.cursor = len(m.events) - 1
			if m.cursor >= m.height {
				m.offset = m.cursor - m.height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 10
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore Causal Graph"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	if !m.acyclic {
		b.WriteString("  " + StyleWarning.Render("(cyclic graph, alphabetical order)"))
	}
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.events) {
		end = len(m.events)
	}
	for i := m.offset; i < end; i++ {
		id := m.events[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%s", cursor, id)
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detailView(m.events[m.cursor]))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.events))))

	return b.String()
}

// detailView renders the detail pane for the selected event.
func (m exploreModel) detailView(id string) string {
	var b strings.Builder

	b.WriteString(StyleHighlight.Render(id))
	b.WriteString("\n")

	if m.acyclic {
		if depth, err := m.graph.CausalDepth(id); err == nil {
			b.WriteString(listDimStyle.Render(fmt.Sprintf("  depth %d", depth)))
			b.WriteString("\n")
		}
	}
	b.WriteString(detailList("  causes", m.graph.Dependencies(id)))
	b.WriteString(detailList("  effects", m.graph.Dependents(id)))

	if meta, ok := m.graph.EventMetadata(id); ok && len(meta) > 0 {
		keys := make([]string, 0, len(meta))
		for k := range meta {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(detailList("  meta", keys))
	}
	return b.String()
}

func detailList(label string, items []string) string {
	if len(items) == 0 {
		return listDimStyle.Render(label+": none") + "\n"
	}
	return listDimStyle.Render(label+": ") + listNormalStyle.Render(strings.Join(items, ", ")) + "\n"
}
