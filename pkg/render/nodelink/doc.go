// Package nodelink renders diagrams as Graphviz node-link drawings.
//
// # Usage
//
// Convert a diagram to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0) // 2x scale
//
// # Options
//
//   - Detailed: label every object with its classification and outline
//     branch and merge points
//   - RankDir: Graphviz layout direction, "LR" by default
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
