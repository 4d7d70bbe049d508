package dsl

import (
	"strings"

	"github.com/matzehuels/commute/pkg/equation"
	"github.com/matzehuels/commute/pkg/errors"
)

// Line is one parsed equation with its 1-based line number in the source.
type Line struct {
	Number   int
	Equation equation.Equation
}

// ParseEquations parses the equation format: one equation per line, each a
// list of composites such as {h}{g}{f} separated by '='. Blank lines and
// '%' comments are skipped.
//
// A line starting or ending with '=', two adjacent '=' signs, or any
// character outside a label is rejected with ErrCodeInvalidEquation.
func ParseEquations(text string) ([]Line, error) {
	var out []Line
	for n, line := range splitLines(text) {
		lineNo := n + 1
		lx := lexer{line: lineNo, equals: true, stray: errors.ErrCodeInvalidEquation}
		toks, err := lx.lex([]rune(line), 0)
		if err != nil {
			return nil, err
		}
		if len(toks) == 0 {
			continue
		}
		eq, err := assemble(lx, toks)
		if err != nil {
			return nil, err
		}
		out = append(out, Line{Number: lineNo, Equation: eq})
	}
	return out, nil
}

func assemble(lx lexer, toks []token) (equation.Equation, error) {
	var eq equation.Equation
	var cur equation.Composite
	for i, t := range toks {
		if t.kind == tokLabel {
			cur = append(cur, t.text)
			continue
		}
		if len(cur) == 0 {
			if i == 0 {
				return nil, lx.errorf(errors.ErrCodeInvalidEquation, t.offset, "'=' with no preceding morphism")
			}
			return nil, lx.errorf(errors.ErrCodeInvalidEquation, t.offset, "empty segment before '='")
		}
		eq = append(eq, cur)
		cur = nil
	}
	if len(cur) == 0 {
		last := toks[len(toks)-1]
		return nil, lx.errorf(errors.ErrCodeInvalidEquation, last.offset, "unterminated segment after '='")
	}
	return append(eq, cur), nil
}

// FormatEquations renders equations one per line in the format read by
// [ParseEquations].
func FormatEquations(eqs []equation.Equation) string {
	var b strings.Builder
	for _, eq := range eqs {
		b.WriteString(eq.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Equations strips line numbers from parsed lines.
func Equations(lines []Line) []equation.Equation {
	out := make([]equation.Equation, len(lines))
	for i, l := range lines {
		out[i] = l.Equation
	}
	return out
}
