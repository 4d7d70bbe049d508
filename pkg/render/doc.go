// Package render provides output formats for diagrams.
//
// # Overview
//
// This package names the supported output formats and converts SVG to other
// image formats:
//
//   - [Format] and [ParseFormat] for format selection
//   - [ToPDF] and [ToPNG] for SVG conversion
//   - LaTeX output in the [latex] subpackage
//   - Graphviz output in the [nodelink] subpackage
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert (from librsvg). When the tool
// is missing they fail with ErrCodeUnsupported:
//
//	svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(g, nodelink.Options{}))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// # LaTeX
//
// The [latex] subpackage writes a diagram as a codi object matrix with
// \mor lines, or as a TikZ picture placed with a spring layout.
//
// [latex]: github.com/matzehuels/commute/pkg/render/latex
// [nodelink]: github.com/matzehuels/commute/pkg/render/nodelink
package render
