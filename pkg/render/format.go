package render

import (
	"strings"

	"github.com/matzehuels/commute/pkg/errors"
)

// Format is an output format for a diagram.
type Format string

const (
	FormatCodi      Format = "codi"      // \obj grid and \mor lines for the codi TikZ library
	FormatTikZ      Format = "tikz"      // tikzpicture with a spring layout
	FormatDOT       Format = "dot"       // Graphviz source
	FormatSVG       Format = "svg"       // Graphviz rendering
	FormatPDF       Format = "pdf"       // SVG converted by rsvg-convert
	FormatPNG       Format = "png"       // SVG converted by rsvg-convert
	FormatJSON      Format = "json"      // interchange document
	FormatYAML      Format = "yaml"      // interchange document
	FormatDiagram   Format = "diagram"   // {f}{A}{B} lines
	FormatEquations Format = "equations" // derived equation lines
)

// Formats lists every supported format.
var Formats = []Format{
	FormatCodi, FormatTikZ, FormatDOT, FormatSVG, FormatPDF, FormatPNG,
	FormatJSON, FormatYAML, FormatDiagram, FormatEquations,
}

// ParseFormat resolves a format name, ignoring case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", s)
}

// IsBinary reports whether the format produces non-text output.
func (f Format) IsBinary() bool { return f == FormatPDF || f == FormatPNG }

// Extension returns the conventional file extension, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatCodi, FormatTikZ:
		return ".tex"
	case FormatDiagram:
		return ".diagram"
	case FormatEquations:
		return ".eq"
	case FormatYAML:
		return ".yaml"
	default:
		return "." + string(f)
	}
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPDF:
		return "application/pdf"
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	default:
		return "text/plain; charset=utf-8"
	}
}
