package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/commute/pkg/derive"
	"github.com/matzehuels/commute/pkg/diagram"
	"github.com/matzehuels/commute/pkg/dsl"
	pkgio "github.com/matzehuels/commute/pkg/io"
	"github.com/matzehuels/commute/pkg/render"
	"github.com/matzehuels/commute/pkg/render/latex"
	"github.com/matzehuels/commute/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats, keyed by
// canonical format name. opts must have passed ValidateForRender.
func Render(ctx context.Context, g *diagram.Graph, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var svg []byte // shared by svg, pdf and png

	for _, name := range opts.Formats {
		format := render.Format(name)
		var data []byte
		var err error

		switch format {
		case render.FormatSVG, render.FormatPDF, render.FormatPNG:
			if svg == nil {
				svg, err = nodelink.RenderSVG(ctx, nodelink.ToDOT(g, dotOptions(opts)))
				if err != nil {
					break
				}
			}
			data, err = fromSVG(ctx, format, svg, opts)
		default:
			data, err = RenderText(g, format, opts)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[name] = data
	}
	return artifacts, nil
}

func fromSVG(ctx context.Context, format render.Format, svg []byte, opts Options) ([]byte, error) {
	switch format {
	case render.FormatPDF:
		return render.ToPDF(ctx, svg)
	case render.FormatPNG:
		return render.ToPNG(ctx, svg, opts.PNGScale)
	default:
		return svg, nil
	}
}

// RenderText renders one of the text formats, which need no external tools.
func RenderText(g *diagram.Graph, format render.Format, opts Options) ([]byte, error) {
	switch format {
	case render.FormatCodi:
		return []byte(latex.Codi(g)), nil
	case render.FormatTikZ:
		return []byte(latex.TikZ(g, latex.TikZOptions{
			LayoutOptions: latex.LayoutOptions{Scale: opts.Scale, Seed: opts.Seed},
		})), nil
	case render.FormatDOT:
		return []byte(nodelink.ToDOT(g, dotOptions(opts))), nil
	case render.FormatDiagram:
		return []byte(dsl.SerializeDiagram(g)), nil
	case render.FormatEquations:
		res, err := derive.Equations(g, derive.Options{MaxDepth: opts.MaxDepth})
		if err != nil {
			return nil, err
		}
		return []byte(res.String()), nil
	case render.FormatJSON, render.FormatYAML:
		var buf bytes.Buffer
		if err := pkgio.Write(g, &buf, pkgio.Format(format)); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported text format: %s", format)
	}
}

func dotOptions(opts Options) nodelink.Options {
	return nodelink.Options{Detailed: opts.Detailed, RankDir: opts.RankDir}
}
