package transform

import (
	"github.com/matzehuels/commute/pkg/diagram"
	"github.com/matzehuels/commute/pkg/equation"
)

// Skeleton is the result of [Condense]: the diagram reduced to its
// branch/merge structure.
type Skeleton struct {
	// Graph is the condensed diagram. Contracted chains appear as single
	// morphisms named by their composite, e.g. "{g}{f}".
	Graph *diagram.Graph

	// Parts maps every morphism created by contraction to the original
	// morphisms it stands for, codomain first.
	Parts map[string]equation.Composite

	// Equations records contractions that would have produced a morphism
	// parallel to an existing one. The contracted chain was dropped from
	// Graph and its equality with the existing morphism is kept here.
	Equations []equation.Equation

	// Removed lists the contracted objects in contraction order.
	Removed []string
}

// Expand returns the original morphisms behind a skeleton morphism. Morphisms
// that were never contracted expand to themselves.
func (s *Skeleton) Expand(name string) equation.Composite {
	if c, ok := s.Parts[name]; ok {
		return c
	}
	return equation.Composite{name}
}

// Condense repeatedly contracts objects with exactly one incoming and one
// outgoing morphism: u -a-> v -b-> w becomes u -{b}{a}-> w. A contraction is
// skipped when it would create a self-loop (u == w). When u and w are already
// joined by a morphism, the chain is dropped and the equality between the
// chain and that morphism is recorded in [Skeleton.Equations].
//
// The input graph is not modified.
func Condense(g *diagram.Graph) *Skeleton {
	s := &Skeleton{
		Graph: g.Clone(),
		Parts: make(map[string]equation.Composite),
	}
	work := s.Graph

	for changed := true; changed; {
		changed = false
		for _, id := range work.ObjectIDs() {
			if work.InDegree(id) != 1 || work.OutDegree(id) != 1 {
				continue
			}
			a, b := work.In(id)[0], work.Out(id)[0]
			if a.Domain == b.Codomain {
				continue
			}
			chain := append(append(equation.Composite{}, s.Expand(b.Name)...), s.Expand(a.Name)...)
			name := chain.String()
			if _, exists := work.Morphism(name); exists {
				continue
			}

			parallel := work.Between(a.Domain, b.Codomain)
			_ = work.RemoveObject(id)
			delete(s.Parts, a.Name)
			delete(s.Parts, b.Name)
			s.Removed = append(s.Removed, id)
			changed = true

			if len(parallel) > 0 {
				s.Equations = append(s.Equations, equation.Equation{chain, s.Expand(parallel[0].Name)})
				continue
			}
			_ = work.AddMorphism(name, a.Domain, b.Codomain)
			s.Parts[name] = chain
		}
	}
	return s
}
