package transform

import (
	"slices"
	"testing"

	"github.com/matzehuels/commute/pkg/diagram"
)

func build(edges ...[3]string) *diagram.Graph {
	g := diagram.New()
	for _, e := range edges {
		_ = g.AddMorphism(e[0], e[1], e[2])
	}
	return g
}

func bridge() *diagram.Graph {
	return build(
		[3]string{"f", "0", "1"}, [3]string{"g", "1", "2"}, [3]string{"h", "2", "3"},
		[3]string{"i", "3", "4"}, [3]string{"j", "1", "5"}, [3]string{"k", "5", "3"},
		[3]string{"l", "0", "6"}, [3]string{"m", "6", "7"}, [3]string{"n", "7", "4"},
	)
}

func TestClassify(t *testing.T) {
	g := bridge()
	_ = g.AddObject("lonely", "")

	tests := []struct {
		id   string
		want Kind
	}{
		{"0", Branch},
		{"1", Branch},
		{"2", Neither},
		{"3", Merge},
		{"4", Merge},
		{"lonely", Both},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := Classify(g, tt.id); got != tt.want {
				t.Errorf("Classify(%s) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}

	all := ClassifyAll(g)
	if len(all) != g.ObjectCount() {
		t.Errorf("len(ClassifyAll) = %d, want %d", len(all), g.ObjectCount())
	}
}

func TestKindPredicates(t *testing.T) {
	if !Both.IsBranch() || !Both.IsMerge() {
		t.Error("Both should be branch and merge")
	}
	if Neither.IsBranch() || Neither.IsMerge() {
		t.Error("Neither should be neither")
	}
	if Kind(42).String() != "unknown" {
		t.Errorf("Kind(42).String() = %q", Kind(42).String())
	}
}

func TestCycleRank(t *testing.T) {
	tests := []struct {
		name string
		g    *diagram.Graph
		want int
	}{
		{"chain", build([3]string{"f", "A", "B"}, [3]string{"g", "B", "C"}), 0},
		{"triangle", build([3]string{"f", "A", "B"}, [3]string{"g", "B", "C"}, [3]string{"h", "A", "C"}), 1},
		{"parallel", build([3]string{"f", "A", "B"}, [3]string{"g", "A", "B"}), 1},
		{"bridge", bridge(), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CycleRank(tt.g); got != tt.want {
				t.Errorf("CycleRank() = %d, want %d", got, tt.want)
			}
			if got := len(CycleBasis(tt.g)); got != tt.want {
				t.Errorf("len(CycleBasis()) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCycleBasisMinimal(t *testing.T) {
	basis := CycleBasis(bridge())

	var lengths []int
	for _, c := range basis {
		lengths = append(lengths, c.Len())
		if len(c.Objects) != c.Len() {
			t.Errorf("cycle %v has %d objects and %d morphisms", c.Objects, len(c.Objects), c.Len())
		}
	}
	slices.Sort(lengths)
	if !slices.Equal(lengths, []int{4, 7}) {
		t.Errorf("cycle lengths = %v, want [4 7]", lengths)
	}
}

func TestCycleBasisParallel(t *testing.T) {
	basis := CycleBasis(build([3]string{"f", "A", "B"}, [3]string{"g", "A", "B"}))
	if len(basis) != 1 {
		t.Fatalf("len(basis) = %d, want 1", len(basis))
	}
	got := slices.Clone(basis[0].Morphisms)
	slices.Sort(got)
	if !slices.Equal(got, []string{"f", "g"}) {
		t.Errorf("cycle morphisms = %v, want [f g]", got)
	}
}

func TestBackEdges(t *testing.T) {
	if got := BackEdges(bridge()); len(got) != 0 {
		t.Errorf("BackEdges(bridge) = %v, want none", got)
	}
	cycle := build([3]string{"f", "A", "B"}, [3]string{"g", "B", "C"}, [3]string{"h", "C", "A"})
	if got := BackEdges(cycle); !slices.Equal(got, []string{"h"}) {
		t.Errorf("BackEdges(cycle) = %v, want [h]", got)
	}
}

func TestCondenseTriangle(t *testing.T) {
	g := build([3]string{"f", "A", "B"}, [3]string{"g", "B", "C"}, [3]string{"h", "A", "C"})
	s := Condense(g)

	if s.Graph.ObjectCount() != 2 || s.Graph.MorphismCount() != 1 {
		t.Errorf("skeleton = %d objects, %d morphisms, want 2, 1",
			s.Graph.ObjectCount(), s.Graph.MorphismCount())
	}
	if len(s.Equations) != 1 || s.Equations[0].String() != "{g}{f} = {h}" {
		t.Errorf("Equations = %v, want [{g}{f} = {h}]", s.Equations)
	}
	if g.ObjectCount() != 3 {
		t.Error("Condense must not modify its input")
	}
}

func TestCondenseBridge(t *testing.T) {
	s := Condense(bridge())

	// Dropping {k}{j} turns 1 and then 3 into pass-through objects.
	if got := s.Graph.ObjectIDs(); !slices.Equal(got, []string{"0", "4"}) {
		t.Errorf("ObjectIDs() = %v, want [0 4]", got)
	}
	if s.Graph.MorphismCount() != 1 {
		t.Errorf("MorphismCount() = %d, want 1", s.Graph.MorphismCount())
	}
	var lines []string
	for _, eq := range s.Equations {
		lines = append(lines, eq.String())
	}
	want := []string{"{k}{j} = {h}{g}", "{i}{h}{g}{f} = {n}{m}{l}"}
	if !slices.Equal(lines, want) {
		t.Errorf("Equations = %v, want %v", lines, want)
	}
	if got := s.Expand("{n}{m}{l}"); got.String() != "{n}{m}{l}" {
		t.Errorf("Expand = %v", got)
	}
	if got := s.Expand("f"); got.String() != "{f}" {
		t.Errorf("Expand(f) = %v", got)
	}
}

func TestCondenseCycle(t *testing.T) {
	g := build([3]string{"f", "A", "B"}, [3]string{"g", "B", "C"}, [3]string{"h", "C", "A"})
	s := Condense(g)

	if s.Graph.ObjectCount() != 2 || s.Graph.MorphismCount() != 2 {
		t.Errorf("skeleton = %d objects, %d morphisms, want 2, 2",
			s.Graph.ObjectCount(), s.Graph.MorphismCount())
	}
	if len(s.Equations) != 0 {
		t.Errorf("Equations = %v, want none", s.Equations)
	}
}
