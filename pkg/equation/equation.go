// Package equation defines composed morphisms and the equations between them.
//
// A [Composite] is a path of morphisms written right to left, codomain-most
// morphism first: the composite g∘f renders as "{g}{f}". An [Equation] asserts
// that two or more composites denote the same morphism and renders as
// "{g}{f} = {h}". A single-composite equation is a self-equality line, used
// for cycles and for chains no branch/merge pair explains.
//
// [Set] collects equations in insertion order without syntactic duplicates.
package equation

import (
	"slices"
	"strings"
)

// Composite is a composed morphism: morphism names in application order
// from the codomain end to the domain end.
type Composite []string

// String renders the composite as brace-delimited names, e.g. "{g}{f}".
func (c Composite) String() string {
	var b strings.Builder
	for _, name := range c {
		b.WriteByte('{')
		b.WriteString(name)
		b.WriteByte('}')
	}
	return b.String()
}

// Equal reports whether both composites list the same names in order.
func (c Composite) Equal(o Composite) bool { return slices.Equal(c, o) }

// Domain returns the name of the morphism applied first.
func (c Composite) Domain() string {
	if len(c) == 0 {
		return ""
	}
	return c[len(c)-1]
}

// Codomain returns the name of the morphism applied last.
func (c Composite) Codomain() string {
	if len(c) == 0 {
		return ""
	}
	return c[0]
}

// Equation asserts that its composites are equal.
type Equation []Composite

// String renders the composites joined by " = ".
func (e Equation) String() string {
	parts := make([]string, len(e))
	for i, c := range e {
		parts[i] = c.String()
	}
	return strings.Join(parts, " = ")
}

// IsSelfEquality reports whether the equation has a single composite.
func (e Equation) IsSelfEquality() bool { return len(e) == 1 }

// Morphisms returns the distinct morphism names used by the equation, in
// order of first appearance.
func (e Equation) Morphisms() []string {
	var out []string
	for _, c := range e {
		for _, name := range c {
			if !slices.Contains(out, name) {
				out = append(out, name)
			}
		}
	}
	return out
}

// Set is an ordered collection of equations without syntactic duplicates.
// The zero value is ready to use.
type Set struct {
	lines []Equation
	seen  map[string]bool
}

// Add appends e unless an equation with the same rendering is already
// present. It reports whether e was added.
func (s *Set) Add(e Equation) bool {
	if len(e) == 0 {
		return false
	}
	key := e.String()
	if s.seen[key] {
		return false
	}
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	s.seen[key] = true
	s.lines = append(s.lines, e)
	return true
}

// Lines returns the equations in insertion order.
func (s *Set) Lines() []Equation { return slices.Clone(s.lines) }

// Len returns the number of equations.
func (s *Set) Len() int { return len(s.lines) }

// String renders one equation per line, with a trailing newline when the
// set is non-empty.
func (s *Set) String() string {
	var b strings.Builder
	for _, e := range s.lines {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Strings renders each equation.
func (s *Set) Strings() []string {
	out := make([]string, len(s.lines))
	for i, e := range s.lines {
		out[i] = e.String()
	}
	return out
}
