package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/commute/pkg/diagram"
	"github.com/matzehuels/commute/pkg/diagram/transform"
	"github.com/matzehuels/commute/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds each object's branch/merge classification to its label
	// and outlines branch and merge points.
	Detailed bool

	// RankDir is the Graphviz layout direction. Empty means "LR".
	RankDir string
}

// ToDOT converts a diagram to Graphviz DOT. Objects are drawn with their
// display labels and morphisms carry their names as edge labels.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(g *diagram.Graph, opts Options) string {
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "LR"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=plaintext, fontsize=20];\n")
	buf.WriteString("  edge [fontsize=16, arrowsize=0.7];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, o := range g.Objects() {
		attrs := []string{fmt.Sprintf("label=%q", o.DisplayLabel())}
		if opts.Detailed {
			kind := transform.Classify(g, o.ID)
			attrs[0] = fmt.Sprintf("label=%q", o.DisplayLabel()+"\n"+kind.String())
			attrs = append(attrs, kindAttrs(kind)...)
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", o.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, m := range g.Morphisms() {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", m.Domain, m.Codomain, m.Name)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func kindAttrs(k transform.Kind) []string {
	switch k {
	case transform.Branch:
		return []string{"shape=box", "style=rounded"}
	case transform.Merge:
		return []string{"shape=box", "style=\"rounded,dashed\""}
	case transform.Both:
		return []string{"shape=box", "style=\"rounded,bold\""}
	default:
		return nil
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// viewBox anchored at the origin so the SVG scales cleanly.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
