package reconstruct

import (
	"slices"
	"strconv"

	"github.com/matzehuels/commute/pkg/diagram"
	"github.com/matzehuels/commute/pkg/dsl"
	"github.com/matzehuels/commute/pkg/equation"
	"github.com/matzehuels/commute/pkg/errors"
)

// Stats counts what a [Builder] has processed.
type Stats struct {
	Lines        int // equations added
	Morphisms    int // distinct morphism names
	Objects      int // objects left after unification
	Contractions int // object merges performed
}

type endpoints struct {
	dom, cod int
}

// Builder reconstructs a diagram from equations, one line at a time.
//
// Every morphism name owns a domain and a codomain id. Composing morphisms
// in an equation and equating composites forces ids to coincide; the Builder
// unifies them eagerly, so the result does not depend on line order.
//
// morphs, byDomain and byCodomain always agree: a contraction rewrites all
// three before the next morphism is read. After Add returns an error the
// Builder is left mid-line and should be discarded.
type Builder struct {
	sets       disjointSet
	morphs     map[string]*endpoints
	names      []string // morphism names in first-seen order
	byDomain   map[int][]string
	byCodomain map[int][]string

	lines        int
	contractions int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		morphs:     make(map[string]*endpoints),
		byDomain:   make(map[int][]string),
		byCodomain: make(map[int][]string),
	}
}

// FromText parses equation text and reconstructs the smallest diagram
// consistent with it. Object IDs of the result are "0", "1", ... in order of
// first appearance.
func FromText(text string) (*diagram.Graph, error) {
	lines, err := dsl.ParseEquations(text)
	if err != nil {
		return nil, err
	}
	b := NewBuilder()
	if err := b.AddLines(lines); err != nil {
		return nil, err
	}
	return b.Graph(), nil
}

// AddLines adds parsed lines in order, stopping at the first error. Errors
// carry the number of the offending line.
func (b *Builder) AddLines(lines []dsl.Line) error {
	for _, l := range lines {
		if err := b.Add(l.Equation); err != nil {
			return errors.At(err, l.Number, 0)
		}
	}
	return nil
}

// FromEquations reconstructs a diagram from already parsed equations.
func FromEquations(eqs []equation.Equation) (*diagram.Graph, error) {
	b := NewBuilder()
	if err := b.AddAll(eqs); err != nil {
		return nil, err
	}
	return b.Graph(), nil
}

// AddAll adds every equation in order, stopping at the first error.
func (b *Builder) AddAll(eqs []equation.Equation) error {
	for _, eq := range eqs {
		if err := b.Add(eq); err != nil {
			return err
		}
	}
	return nil
}

// Add reads one equation. All composites of the line share one domain and
// one codomain; within a composite, each morphism's codomain is the next
// morphism's domain.
//
// Returns ErrCodeInvalidEquation for an empty equation or composite and
// ErrCodeDuplicateMorphism when the line forces a morphism's domain and
// codomain together.
func (b *Builder) Add(eq equation.Equation) error {
	if len(eq) == 0 {
		return errors.New(errors.ErrCodeInvalidEquation, "empty equation")
	}
	for _, c := range eq {
		if len(c) == 0 {
			return errors.New(errors.ErrCodeInvalidEquation, "empty composite in %q", eq.String())
		}
		for _, name := range c {
			if name == "" {
				return errors.New(errors.ErrCodeInvalidLabel, "empty morphism name in %q", eq.String())
			}
		}
	}

	b.lines++
	lineDom, lineCod := b.sets.add(), b.sets.add()
	for _, c := range eq {
		cur := lineDom
		for i := len(c) - 1; i >= 0; i-- {
			m := b.morphism(c[i])
			if _, err := b.unify(cur, m.dom); err != nil {
				return err
			}
			cur = m.cod
		}
		if _, err := b.unify(cur, lineCod); err != nil {
			return err
		}
	}
	return nil
}

// morphism returns the endpoints of name, registering it with fresh ids on
// first sight.
func (b *Builder) morphism(name string) *endpoints {
	if m, ok := b.morphs[name]; ok {
		return m
	}
	m := &endpoints{dom: b.sets.add(), cod: b.sets.add()}
	b.morphs[name] = m
	b.names = append(b.names, name)
	b.byDomain[m.dom] = append(b.byDomain[m.dom], name)
	b.byCodomain[m.cod] = append(b.byCodomain[m.cod], name)
	return m
}

func (b *Builder) degree(id int) int {
	return len(b.byDomain[id]) + len(b.byCodomain[id])
}

// unify merges the objects x and y and returns the survivor. The object with
// fewer incident morphisms is contracted into the other; on a tie the older
// id survives.
func (b *Builder) unify(x, y int) (int, error) {
	x, y = b.sets.find(x), b.sets.find(y)
	if x == y {
		return x, nil
	}
	keep, drop := x, y
	if dk, dd := b.degree(keep), b.degree(drop); dd > dk || (dd == dk && drop < keep) {
		keep, drop = drop, keep
	}

	for _, name := range b.byDomain[drop] {
		if b.morphs[name].cod == keep {
			return 0, errors.New(errors.ErrCodeDuplicateMorphism,
				"morphism %q would have equal domain and codomain", name)
		}
	}
	for _, name := range b.byCodomain[drop] {
		if b.morphs[name].dom == keep {
			return 0, errors.New(errors.ErrCodeDuplicateMorphism,
				"morphism %q would have equal domain and codomain", name)
		}
	}

	for _, name := range b.byDomain[drop] {
		b.morphs[name].dom = keep
	}
	for _, name := range b.byCodomain[drop] {
		b.morphs[name].cod = keep
	}
	b.byDomain[keep] = append(b.byDomain[keep], b.byDomain[drop]...)
	b.byCodomain[keep] = append(b.byCodomain[keep], b.byCodomain[drop]...)
	delete(b.byDomain, drop)
	delete(b.byCodomain, drop)
	b.sets.link(drop, keep)
	b.contractions++
	return keep, nil
}

// Graph returns the reconstructed diagram. Morphisms keep their first-seen
// order and objects are numbered densely in the order morphisms reach them.
func (b *Builder) Graph() *diagram.Graph {
	g := diagram.New()
	ids := make(map[int]string)
	id := func(x int) string {
		x = b.sets.find(x)
		s, ok := ids[x]
		if !ok {
			s = strconv.Itoa(len(ids))
			ids[x] = s
		}
		return s
	}
	for _, name := range b.names {
		m := b.morphs[name]
		dom, cod := id(m.dom), id(m.cod)
		_ = g.AddMorphism(name, dom, cod)
	}
	return g
}

// Morphisms returns the morphism names seen so far in first-seen order.
func (b *Builder) Morphisms() []string { return slices.Clone(b.names) }

// Stats reports counters for the equations added so far.
func (b *Builder) Stats() Stats {
	objects := make(map[int]bool)
	for _, m := range b.morphs {
		objects[b.sets.find(m.dom)] = true
		objects[b.sets.find(m.cod)] = true
	}
	return Stats{
		Lines:        b.lines,
		Morphisms:    len(b.names),
		Objects:      len(objects),
		Contractions: b.contractions,
	}
}
