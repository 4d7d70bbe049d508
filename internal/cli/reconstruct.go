package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/commute/pkg/dsl"
	"github.com/matzehuels/commute/pkg/render"
)

type reconstructOpts struct {
	output  string
	format  string
	refresh bool
	quiet   bool
}

// reconstructCommand creates the reconstruct command, which rebuilds a
// diagram from equations.
func (c *CLI) reconstructCommand() *cobra.Command {
	opts := reconstructOpts{format: string(render.FormatDiagram)}

	cmd := &cobra.Command{
		Use:   "reconstruct [file]",
		Short: "Rebuild a diagram from equations",
		Long: `Reconstruct reads equations such as {g}{f} = {h}, one per line, and prints
the diagram they describe. Objects are numbered in the order they are first
met. Use --format to print the result in another output format.`,
		Example: `  commute reconstruct bridge.eq
  echo '{g}{f} = {h}' | commute reconstruct - --format codi`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReconstruct(cmd, firstArg(args), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the diagram to a file instead of stdout")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: diagram, json, yaml, codi, tikz, dot")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print only the diagram")

	return cmd
}

func (c *CLI) runReconstruct(cmd *cobra.Command, input string, opts reconstructOpts) error {
	ctx := cmd.Context()
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	text, err := readInput(input, cmd.InOrStdin())
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer c.closeRunner(runner)

	popts := c.baseOptions()
	popts.Refresh = opts.refresh
	rec, hit, err := runner.ReconstructWithCacheInfo(ctx, text, popts)
	if err != nil {
		return withFile(err, input)
	}

	var out []byte
	if format == render.FormatDiagram {
		out = []byte(dsl.SerializeDiagram(rec.Graph))
	} else {
		popts.Formats = []string{string(format)}
		artifacts, err := runner.Render(ctx, rec.Graph, popts)
		if err != nil {
			return err
		}
		out = artifacts[string(format)]
	}

	if err := writeOutput(opts.output, out, cmd.OutOrStdout()); err != nil {
		return err
	}
	if opts.quiet {
		return nil
	}
	if opts.output != "" {
		printSuccess("Rebuilt diagram from %d equations", rec.Stats.Lines)
		printFile(opts.output)
	}
	printStats(rec.Graph.ObjectCount(), rec.Graph.MorphismCount(), 0, hit)
	return nil
}
