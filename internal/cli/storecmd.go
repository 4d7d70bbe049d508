package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/commute/pkg/dsl"
	"github.com/matzehuels/commute/pkg/store"
)

// storeCommand creates the store command for managing saved diagrams.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Save, list, show and delete named diagrams",
	}

	cmd.AddCommand(c.storeSaveCommand())
	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storeShowCommand())
	cmd.AddCommand(c.storeDeleteCommand())

	return cmd
}

func (c *CLI) storeSaveCommand() *cobra.Command {
	var name, id string

	cmd := &cobra.Command{
		Use:   "save [file]",
		Short: "Save a diagram together with its equations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			input := firstArg(args)
			g, err := loadDiagram(input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if name == "" {
				name = basePath("", input)
			}

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer c.closeRunner(runner)
			res, err := runner.Derive(ctx, g, c.baseOptions())
			if err != nil {
				return err
			}

			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			rec := &store.Record{ID: id, Name: name, Diagram: dsl.SerializeDiagram(g), Equations: res.Lines()}
			if id != "" {
				if prev, err := st.Get(ctx, id); err == nil {
					rec.CreatedAt = prev.CreatedAt
				}
			}
			if err := st.Save(ctx, rec); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rec.ID)
			printSuccess("Saved %s", StyleHighlight.Render(rec.Name))
			printNextStep("Show it with", "commute store show "+rec.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "diagram name (default: file name)")
	cmd.Flags().StringVar(&id, "id", "", "replace the diagram with this id")

	return cmd
}

func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved diagrams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			recs, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				printInfo("No saved diagrams")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), recordTable(recs, time.Now()))
			return nil
		},
	}
}

func (c *CLI) storeShowCommand() *cobra.Command {
	var equations bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			rec, err := st.Get(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if equations {
				for _, l := range rec.Equations {
					fmt.Fprintln(out, l)
				}
				return nil
			}
			_, err = fmt.Fprint(out, rec.Diagram)
			return err
		},
	}

	cmd.Flags().BoolVarP(&equations, "equations", "e", false, "print the saved equations instead of the diagram")

	return cmd
}

func (c *CLI) storeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}

func recordTable(recs []*store.Record, now time.Time) string {
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{
			r.ID,
			r.Name,
			fmt.Sprint(len(r.Equations)),
			formatRelativeTime(r.UpdatedAt, now),
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Equations", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 0 || col == 3:
				return StyleDim
			default:
				return lipgloss.NewStyle()
			}
		}).
		Render()
}

func formatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
