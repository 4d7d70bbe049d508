package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/commute/internal/corpus"
	"github.com/matzehuels/commute/pkg/diagram"
	"github.com/matzehuels/commute/pkg/pipeline"
)

type checkOpts struct {
	corpus  bool
	reverse bool
	verbose bool
}

// checkCommand creates the check command, which verifies that deriving and
// rebuilding a diagram reproduces it.
func (c *CLI) checkCommand() *cobra.Command {
	var opts checkOpts

	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Verify the derive/reconstruct round trip",
		Long: `Check derives the equations of each diagram, rebuilds a diagram from them and
compares it with the input: morphism names must match and the shapes must be
isomorphic. With --corpus every reference diagram is checked.`,
		Example: `  commute check square.diagram
  commute check --corpus --reverse`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !opts.corpus {
				args = []string{stdinName}
			}
			return c.runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.corpus, "corpus", false, "check every reference diagram")
	cmd.Flags().BoolVar(&opts.reverse, "reverse", false, "also check each diagram with its morphisms reversed")
	cmd.Flags().BoolVar(&opts.verbose, "show", false, "print the derived equations")

	return cmd
}

type checkItem struct {
	name string
	g    *diagram.Graph
}

func (c *CLI) runCheck(cmd *cobra.Command, args []string, opts checkOpts) error {
	ctx := cmd.Context()

	var items []checkItem
	for _, path := range args {
		g, err := loadDiagram(path, cmd.InOrStdin())
		if err != nil {
			return err
		}
		items = append(items, checkItem{name: path, g: g})
	}
	if opts.corpus {
		for _, e := range corpus.All() {
			items = append(items, checkItem{name: corpusPrefix + e.Name, g: e.Graph()})
		}
	}
	if opts.reverse {
		for _, it := range items[:len(items):len(items)] {
			items = append(items, checkItem{name: it.name + " (reversed)", g: it.g.Reverse()})
		}
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer c.closeRunner(runner)

	failed := 0
	for _, it := range items {
		report, err := runner.Check(ctx, it.g, c.baseOptions())
		if err != nil {
			printError("%s: %v", it.name, err)
			failed++
			continue
		}
		if !report.OK() {
			printError("%s: %s", it.name, verdict(report))
			failed++
		} else {
			printSuccess("%s %s", it.name, StyleDim.Render(fmt.Sprintf("(%d equations)", len(report.Equations))))
		}
		if opts.verbose {
			writeEquations(cmd.OutOrStdout(), report.Equations)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d diagrams failed the round trip", failed, len(items))
	}
	return nil
}

func verdict(r *pipeline.Report) string {
	switch {
	case !r.Isomorphic:
		return "rebuilt diagram has a different shape"
	case !r.Equivalent:
		return "rebuilt diagram connects morphisms differently"
	default:
		return "ok"
	}
}

func writeEquations(w io.Writer, lines []string) {
	for _, l := range lines {
		fmt.Fprintln(w, "  "+highlightEquation(l))
	}
}
