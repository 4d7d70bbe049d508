package equation

import (
	"slices"
	"testing"
)

func TestCompositeString(t *testing.T) {
	tests := []struct {
		name string
		c    Composite
		want string
	}{
		{"empty", nil, ""},
		{"single", Composite{"f"}, "{f}"},
		{"chain", Composite{"h", "g", "f"}, "{h}{g}{f}"},
		{"latex", Composite{`\mathbf{I}_{X}`}, `{\mathbf{I}_{X}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompositeEnds(t *testing.T) {
	c := Composite{"g", "f"}
	if c.Domain() != "f" || c.Codomain() != "g" {
		t.Errorf("Domain/Codomain = %s/%s, want f/g", c.Domain(), c.Codomain())
	}
	var empty Composite
	if empty.Domain() != "" || empty.Codomain() != "" {
		t.Error("empty composite should have empty ends")
	}
}

func TestEquation(t *testing.T) {
	e := Equation{{"g", "f"}, {"h"}}

	if got := e.String(); got != "{g}{f} = {h}" {
		t.Errorf("String() = %q", got)
	}
	if e.IsSelfEquality() {
		t.Error("IsSelfEquality() = true, want false")
	}
	if got := e.Morphisms(); !slices.Equal(got, []string{"g", "f", "h"}) {
		t.Errorf("Morphisms() = %v", got)
	}

	loop := Equation{{"f", "h", "g", "f"}}
	if !loop.IsSelfEquality() {
		t.Error("IsSelfEquality() = false, want true")
	}
	if got := loop.Morphisms(); !slices.Equal(got, []string{"f", "h", "g"}) {
		t.Errorf("Morphisms() = %v", got)
	}
}

func TestSet(t *testing.T) {
	var s Set

	if !s.Add(Equation{{"g", "f"}, {"h"}}) {
		t.Error("first Add should succeed")
	}
	if s.Add(Equation{{"g", "f"}, {"h"}}) {
		t.Error("duplicate Add should be rejected")
	}
	if s.Add(nil) {
		t.Error("empty equation should be rejected")
	}
	s.Add(Equation{{"k"}})

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if got := s.String(); got != "{g}{f} = {h}\n{k}\n" {
		t.Errorf("String() = %q", got)
	}
	if got := s.Strings(); !slices.Equal(got, []string{"{g}{f} = {h}", "{k}"}) {
		t.Errorf("Strings() = %v", got)
	}
}
