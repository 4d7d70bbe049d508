package dsl

import (
	stderrors "errors"
	"strings"
	"unicode"

	"github.com/matzehuels/commute/pkg/diagram"
	"github.com/matzehuels/commute/pkg/errors"
)

// ParseDiagram parses the diagram format:
//
//	% optional display labels first
//	L{A}{\mathcal{A}}
//	{f}{A}{B}
//	{g}{B}{C}
//
// Each morphism line is {Function}{Domain}{Codomain}. Label lines
// L{Object}{Label} must come before the first morphism line. Errors carry
// the 1-based line and the rune offset of the offending token.
func ParseDiagram(text string) (*diagram.Graph, error) {
	g := diagram.New()
	seenMorphism := false

	for n, line := range splitLines(text) {
		lineNo := n + 1
		lx := lexer{line: lineNo, stray: errors.ErrCodeInvalidDiagram}
		runes := []rune(line)

		start := firstNonSpace(runes)
		if start < len(runes) && runes[start] == 'L' {
			toks, err := lx.lex(runes[start+1:], start+1)
			if err != nil {
				return nil, err
			}
			if seenMorphism {
				return nil, errors.At(errors.New(errors.ErrCodeInvalidDiagram,
					"label line after morphism lines"), lineNo, start)
			}
			if len(toks) != 2 {
				return nil, errors.At(errors.New(errors.ErrCodeInvalidDiagram,
					"label line needs {Object}{Label}, found %d labels", len(toks)), lineNo, start)
			}
			_ = g.AddObject(toks[0].text, toks[1].text)
			continue
		}

		toks, err := lx.lex(runes, 0)
		if err != nil {
			return nil, err
		}
		if len(toks) == 0 {
			continue
		}
		if len(toks) != 3 {
			return nil, errors.At(errors.New(errors.ErrCodeInvalidDiagram,
				"morphism line needs {Function}{Domain}{Codomain}, found %d labels", len(toks)),
				lineNo, toks[0].offset)
		}
		seenMorphism = true
		if err := g.AddMorphism(toks[0].text, toks[1].text, toks[2].text); err != nil {
			return nil, errors.At(morphismError(err), lineNo, toks[0].offset)
		}
	}
	return g, nil
}

func morphismError(err error) error {
	var conflict *diagram.ConflictError
	if stderrors.As(err, &conflict) {
		return errors.Wrap(errors.ErrCodeDuplicateMorphism, err, "morphism %q redefined", conflict.Existing.Name)
	}
	return errors.Wrap(errors.ErrCodeInvalidDiagram, err, "invalid morphism")
}

// SerializeDiagram renders g in the format read by [ParseDiagram]. Objects
// with a custom display label, and isolated objects, get a label line so
// they survive a round trip.
func SerializeDiagram(g *diagram.Graph) string {
	var b strings.Builder
	for _, o := range g.Objects() {
		isolated := g.InDegree(o.ID) == 0 && g.OutDegree(o.ID) == 0
		if (o.Label != "" && o.Label != o.ID) || isolated {
			b.WriteString("L")
			writeLabel(&b, o.ID)
			writeLabel(&b, o.DisplayLabel())
			b.WriteByte('\n')
		}
	}
	for _, m := range g.Morphisms() {
		writeLabel(&b, m.Name)
		writeLabel(&b, m.Domain)
		writeLabel(&b, m.Codomain)
		b.WriteByte('\n')
	}
	return b.String()
}

func writeLabel(b *strings.Builder, s string) {
	b.WriteByte('{')
	b.WriteString(s)
	b.WriteByte('}')
}

func firstNonSpace(runes []rune) int {
	for i, r := range runes {
		if !unicode.IsSpace(r) {
			return i
		}
	}
	return len(runes)
}
