package reconstruct

import (
	"slices"
	"testing"

	"github.com/matzehuels/commute/pkg/diagram"
	"github.com/matzehuels/commute/pkg/equation"
	"github.com/matzehuels/commute/pkg/errors"
)

func triangle() *diagram.Graph {
	g := diagram.New()
	_ = g.AddMorphism("f", "A", "B")
	_ = g.AddMorphism("g", "B", "C")
	_ = g.AddMorphism("h", "A", "C")
	return g
}

func TestFromTextTriangle(t *testing.T) {
	for _, text := range []string{"{g}{f} = {h}\n", "{h} = {g}{f}"} {
		g, err := FromText(text)
		if err != nil {
			t.Fatalf("FromText(%q) error: %v", text, err)
		}
		if g.ObjectCount() != 3 || g.MorphismCount() != 3 {
			t.Errorf("FromText(%q) = %d objects, %d morphisms, want 3, 3",
				text, g.ObjectCount(), g.MorphismCount())
		}
		if !diagram.Equivalent(g, triangle()) {
			t.Errorf("FromText(%q) is not the triangle", text)
		}
	}
}

func TestFromTextCycle(t *testing.T) {
	g, err := FromText("{f}{h}{g}{f}")
	if err != nil {
		t.Fatalf("FromText() error: %v", err)
	}
	want := diagram.New()
	_ = want.AddMorphism("f", "0", "1")
	_ = want.AddMorphism("g", "1", "2")
	_ = want.AddMorphism("h", "2", "0")
	if !diagram.Equivalent(g, want) {
		t.Errorf("FromText() = %v, want a three-cycle", g.Morphisms())
	}
}

func TestDenseIDs(t *testing.T) {
	g, err := FromText("{g}{f} = {h}")
	if err != nil {
		t.Fatalf("FromText() error: %v", err)
	}
	if got := g.ObjectIDs(); !slices.Equal(got, []string{"0", "1", "2"}) {
		t.Errorf("ObjectIDs() = %v, want [0 1 2]", got)
	}
	// f is read first: composites are applied domain end first.
	if got := g.Morphisms(); got[0].Name != "f" {
		t.Errorf("first morphism = %v, want f", got[0])
	}
}

func TestIdempotence(t *testing.T) {
	line := equation.Equation{{"k", "h", "g", "f"}, {"k", "h'", "g'", "f"}}

	once := NewBuilder()
	if err := once.Add(line); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	twice := NewBuilder()
	if err := twice.AddAll([]equation.Equation{line, line}); err != nil {
		t.Fatalf("AddAll() error: %v", err)
	}

	a, b := once.Graph(), twice.Graph()
	if a.MorphismCount() != 6 {
		t.Errorf("MorphismCount() = %d, want 6", a.MorphismCount())
	}
	if a.ObjectCount() != 6 {
		t.Errorf("ObjectCount() = %d, want 6", a.ObjectCount())
	}
	if !diagram.Equivalent(a, b) {
		t.Error("adding a line twice changed the graph")
	}
}

func TestBubble(t *testing.T) {
	// f fans into two parallel paths that rejoin before k.
	g, err := FromText("{k}{h}{g}{f} = {k}{h'}{g'}{f}")
	if err != nil {
		t.Fatalf("FromText() error: %v", err)
	}
	f, _ := g.Morphism("f")
	for _, name := range []string{"g", "g'"} {
		m, ok := g.Morphism(name)
		if !ok {
			t.Fatalf("morphism %s missing", name)
		}
		if m.Domain != f.Codomain {
			t.Errorf("%s starts at %s, want codomain of f (%s)", name, m.Domain, f.Codomain)
		}
	}
	h, _ := g.Morphism("h")
	h2, _ := g.Morphism("h'")
	if h.Codomain != h2.Codomain {
		t.Errorf("h and h' end at %s and %s, want the same object", h.Codomain, h2.Codomain)
	}
	g1, _ := g.Morphism("g")
	g2, _ := g.Morphism("g'")
	if g1.Codomain == g2.Codomain {
		t.Error("g and g' should end at distinct objects")
	}
}

func TestOrderIndependence(t *testing.T) {
	eqs := []equation.Equation{
		{{"i", "h", "g", "f"}, {"n", "m", "l"}},
		{{"h", "g"}, {"k", "j"}},
	}
	a, err := FromEquations(eqs)
	if err != nil {
		t.Fatalf("FromEquations() error: %v", err)
	}
	b, err := FromEquations([]equation.Equation{eqs[1], eqs[0]})
	if err != nil {
		t.Fatalf("FromEquations() error: %v", err)
	}
	if !diagram.Equivalent(a, b) {
		t.Error("line order changed the graph")
	}
	if a.ObjectCount() != 8 || a.MorphismCount() != 9 {
		t.Errorf("bridge = %d objects, %d morphisms, want 8, 9", a.ObjectCount(), a.MorphismCount())
	}
}

func TestSelfLoopRejected(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"identity", "{f} = {g}{f}"},
		{"forced later", "{g}{f} = {h}\n{g} = {h}{f}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromText(tt.text)
			if !errors.Is(err, errors.ErrCodeDuplicateMorphism) {
				t.Fatalf("FromText(%q) error = %v, want DUPLICATE_MORPHISM", tt.text, err)
			}
			if _, _, ok := errors.Position(err); !ok {
				t.Errorf("error %v has no position", err)
			}
		})
	}
}

func TestSyntaxErrorsPropagate(t *testing.T) {
	_, err := FromText("{f} =")
	if !errors.Is(err, errors.ErrCodeInvalidEquation) {
		t.Errorf("FromText() error = %v, want INVALID_EQUATION", err)
	}
}

func TestAddRejectsEmpty(t *testing.T) {
	b := NewBuilder()
	tests := []struct {
		name string
		eq   equation.Equation
		code errors.Code
	}{
		{"no composites", nil, errors.ErrCodeInvalidEquation},
		{"empty composite", equation.Equation{{"f"}, {}}, errors.ErrCodeInvalidEquation},
		{"empty name", equation.Equation{{"f", ""}}, errors.ErrCodeInvalidLabel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := b.Add(tt.eq); !errors.Is(err, tt.code) {
				t.Errorf("Add() error = %v, want %s", err, tt.code)
			}
		})
	}
	if b.Stats().Lines != 0 {
		t.Errorf("rejected lines were counted")
	}
}

func TestStats(t *testing.T) {
	b := NewBuilder()
	if err := b.Add(equation.Equation{{"g", "f"}, {"h"}}); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	s := b.Stats()
	want := Stats{Lines: 1, Morphisms: 3, Objects: 3}
	if s.Lines != want.Lines || s.Morphisms != want.Morphisms || s.Objects != want.Objects {
		t.Errorf("Stats() = %+v, want %+v", s, want)
	}
	if s.Contractions == 0 {
		t.Error("Stats().Contractions = 0, want > 0")
	}
	if got := b.Morphisms(); !slices.Equal(got, []string{"f", "g", "h"}) {
		t.Errorf("Morphisms() = %v, want [f g h]", got)
	}
}

func TestUnifyKeepsBusierObject(t *testing.T) {
	b := NewBuilder()
	b.morphism("f")
	b.morphism("g")
	x := b.morphism("f").cod
	y := b.morphism("g").dom

	// Give y a second incident morphism so it outweighs x.
	h := b.morphism("h")
	if _, err := b.unify(h.dom, y); err != nil {
		t.Fatalf("unify() error: %v", err)
	}
	y = b.sets.find(y)

	keep, err := b.unify(x, y)
	if err != nil {
		t.Fatalf("unify() error: %v", err)
	}
	if keep != y {
		t.Errorf("unify() kept %d, want %d", keep, y)
	}
	if got := b.morphs["f"].cod; got != y {
		t.Errorf("f codomain = %d, want %d", got, y)
	}
}

func TestDisjointSet(t *testing.T) {
	var s disjointSet
	a, b, c := s.add(), s.add(), s.add()
	s.link(b, a)
	s.link(c, b)
	if s.find(c) != a {
		t.Errorf("find(c) = %d, want %d", s.find(c), a)
	}
	if s.size() != 3 {
		t.Errorf("size() = %d, want 3", s.size())
	}
}
