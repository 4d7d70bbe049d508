package cli

import (
	"github.com/spf13/cobra"
)

type deriveOpts struct {
	output   string
	maxDepth int
	refresh  bool
	quiet    bool
}

// deriveCommand creates the derive command, which prints the minimal
// equations of a diagram.
func (c *CLI) deriveCommand() *cobra.Command {
	var opts deriveOpts

	cmd := &cobra.Command{
		Use:   "derive [file]",
		Short: "Derive the minimal equations of a diagram",
		Long: `Derive reads a diagram (one {f}{A}{B} line per morphism, optional
L{A}{label} lines first) and prints the smallest set of composition equations
from which the diagram can be rebuilt.

The file may also be a .json or .yaml interchange document, "corpus:<name>"
for a reference diagram, or "-" for standard input.`,
		Example: `  commute derive square.diagram
  echo '{f}{A}{B} {g}{B}{C}' | commute derive -
  commute derive corpus:bridge -o bridge.eq`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDerive(cmd, firstArg(args), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write equations to a file instead of stdout")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "bound on the traversal depth (default 4096)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print only the equations")

	return cmd
}

func (c *CLI) runDerive(cmd *cobra.Command, input string, opts deriveOpts) error {
	ctx := cmd.Context()
	g, err := loadDiagram(input, cmd.InOrStdin())
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer c.closeRunner(runner)

	popts := c.baseOptions()
	if opts.maxDepth != 0 {
		popts.MaxDepth = opts.maxDepth
	}
	popts.Refresh = opts.refresh

	prog := newProgress(loggerFromContext(ctx))
	res, hit, err := runner.DeriveWithCacheInfo(ctx, g, popts)
	if err != nil {
		return withFile(err, input)
	}
	prog.done("derive finished", "lines", len(res.Equations))

	if err := writeOutput(opts.output, []byte(res.String()), cmd.OutOrStdout()); err != nil {
		return err
	}
	if opts.quiet {
		return nil
	}
	if opts.output != "" {
		printSuccess("Derived %d equations", len(res.Equations))
		printFile(opts.output)
	}
	printStats(g.ObjectCount(), g.MorphismCount(), len(res.Equations), hit)
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
