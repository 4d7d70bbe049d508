package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/commute/pkg/diagram"
	"github.com/matzehuels/commute/pkg/pipeline"
	"github.com/matzehuels/commute/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string  // output file (single format) or base path (several)
	formats   string  // comma-separated output formats
	equations bool    // input holds equations rather than a diagram
	detailed  bool    // classify objects in Graphviz output
	rankDir   string  // Graphviz layout direction
	scale     float64 // TikZ layout half-width
	pngScale  float64 // PNG rasterization factor
	seed      uint64  // spring layout seed
	refresh   bool
}

// renderCommand creates the render command for generating LaTeX, Graphviz
// and image output.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a diagram as LaTeX, Graphviz or an image",
		Long: `Render writes a diagram in one or more output formats:

  codi       \obj grid and \mor lines for the codi TikZ library (default)
  tikz       tikzpicture with a spring layout
  dot        Graphviz source
  svg        Graphviz rendering
  pdf, png   SVG converted with rsvg-convert
  json, yaml interchange documents
  diagram    {f}{A}{B} lines
  equations  derived equations

A single text format goes to stdout unless --output is set. Several formats,
or binary ones, are written next to the input (or to the --output base path)
with their conventional extensions.`,
		Example: `  commute render square.diagram
  commute render square.diagram -f tikz,svg -o build/square
  commute render bridge.eq --equations -f codi`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, firstArg(args), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (several)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s), comma-separated (default codi)")
	cmd.Flags().BoolVarP(&opts.equations, "equations", "e", false, "read equations and render the rebuilt diagram")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "mark branch and merge objects (dot, svg, pdf, png)")
	cmd.Flags().StringVar(&opts.rankDir, "rankdir", "", "Graphviz direction: LR (default), RL, TB, BT")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "TikZ layout half-width (default 4)")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", 0, "PNG scale factor (default 2)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "spring layout seed (default 42)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts renderOpts) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer c.closeRunner(runner)

	popts := c.renderOptions(opts)
	if err := popts.ValidateForRender(); err != nil {
		return err
	}

	g, err := c.renderInput(ctx, cmd, runner, input, opts.equations, popts)
	if err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	spin := newSpinner(ctx, "Rendering "+strings.Join(popts.Formats, ", "))
	spin.Start()
	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, g, popts)
	spin.Stop()
	if err != nil {
		return err
	}
	prog.done("render finished", "formats", popts.Formats)

	if len(popts.Formats) == 1 {
		f := render.Format(popts.Formats[0])
		if opts.output != "" || !f.IsBinary() {
			if err := writeOutput(opts.output, artifacts[string(f)], cmd.OutOrStdout()); err != nil {
				return err
			}
			if opts.output != "" {
				printSuccess("Rendered %s", f)
				printFile(opts.output)
			}
			return nil
		}
	}

	base := basePath(opts.output, input)
	for _, name := range popts.Formats {
		path := base + render.Format(name).Extension()
		if err := writeOutput(path, artifacts[name], nil); err != nil {
			return err
		}
		printFile(path)
	}
	printStats(g.ObjectCount(), g.MorphismCount(), 0, hit)
	return nil
}

// renderOptions merges flags over the configured defaults.
func (c *CLI) renderOptions(opts renderOpts) pipeline.Options {
	popts := c.baseOptions()
	if f := parseFormats(opts.formats); len(f) > 0 {
		popts.Formats = f
	}
	popts.Formats = append([]string(nil), popts.Formats...)
	popts.Detailed = opts.detailed
	popts.RankDir = opts.rankDir
	if opts.scale != 0 {
		popts.Scale = opts.scale
	}
	if opts.pngScale != 0 {
		popts.PNGScale = opts.pngScale
	}
	popts.Seed = opts.seed
	popts.Refresh = opts.refresh
	return popts
}

// renderInput loads the diagram to render, rebuilding it first when the
// input holds equations.
func (c *CLI) renderInput(ctx context.Context, cmd *cobra.Command, runner *pipeline.Runner, input string, equations bool, opts pipeline.Options) (*diagram.Graph, error) {
	if !equations {
		return loadDiagram(input, cmd.InOrStdin())
	}
	text, err := readInput(input, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	rec, err := runner.Reconstruct(ctx, text, opts)
	if err != nil {
		return nil, withFile(err, input)
	}
	return rec.Graph, nil
}
