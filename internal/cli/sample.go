package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/commute/internal/corpus"
	"github.com/matzehuels/commute/pkg/dsl"
	"github.com/matzehuels/commute/pkg/errors"
)

// sampleCommand creates the sample command, which prints reference
// diagrams.
func (c *CLI) sampleCommand() *cobra.Command {
	var reverse bool

	cmd := &cobra.Command{
		Use:   "sample [name]",
		Short: "Print a reference diagram",
		Long: `Sample prints one of the built-in reference diagrams as diagram text, ready to
pipe into derive or render. Without a name it lists them.`,
		Example: `  commute sample
  commute sample bridge | commute derive -`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: corpus.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintln(out, corpusTable())
				return nil
			}
			entry, ok := corpus.Lookup(args[0])
			if !ok {
				return errors.New(errors.ErrCodeNotFound, "no corpus diagram named %q", args[0])
			}
			g := entry.Graph()
			if reverse {
				g = g.Reverse()
			}
			_, err := fmt.Fprint(out, dsl.SerializeDiagram(g))
			return err
		},
	}

	cmd.Flags().BoolVar(&reverse, "reverse", false, "reverse every morphism")

	return cmd
}

func corpusTable() string {
	var rows [][]string
	for _, e := range corpus.All() {
		rows = append(rows, []string{e.Name, fmt.Sprint(len(e.Edges)), e.Description})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Morphisms", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 0:
				return StyleHighlight
			default:
				return lipgloss.NewStyle()
			}
		}).
		Render()
}
