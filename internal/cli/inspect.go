package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/commute/pkg/pipeline"
)

// inspectCommand creates the inspect command, which reports how every object
// of a diagram branches and merges.
func (c *CLI) inspectCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the branch/merge structure and cycles of a diagram",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadDiagram(firstArg(args), cmd.InOrStdin())
			if err != nil {
				return err
			}
			in := pipeline.Inspect(g)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(in)
			}
			fmt.Fprintln(out, inspectionTable(in))
			fmt.Fprintln(out, inspectionSummary(in))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the inspection as JSON")

	return cmd
}

func inspectionTable(in *pipeline.Inspection) string {
	rows := make([][]string, 0, len(in.Objects))
	for _, o := range in.Objects {
		rows = append(rows, []string{o.ID, o.Label, o.Kind, strconv.Itoa(o.InDegree), strconv.Itoa(o.OutDegree)})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Object", "Label", "Kind", "In", "Out").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 2 && row >= 0 && row < len(in.Objects) && in.Objects[row].Kind != "neither" {
				return StyleHighlight
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func inspectionSummary(in *pipeline.Inspection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d objects, %d morphisms, %d components, cycle rank %d\n",
		len(in.Objects), in.Morphisms, in.Components, in.CycleRank)
	if len(in.BackEdges) > 0 {
		fmt.Fprintf(&b, "back edges: %s\n", strings.Join(in.BackEdges, ", "))
	}
	for i, c := range in.CycleBasis {
		fmt.Fprintf(&b, "cycle %d: %s\n", i+1, strings.Join(c, " "))
	}
	if sk := in.Skeleton; sk != nil {
		fmt.Fprintf(&b, "skeleton: %d objects, %d morphisms\n", sk.Graph.ObjectCount(), sk.Graph.MorphismCount())
	}
	return strings.TrimRight(b.String(), "\n")
}
