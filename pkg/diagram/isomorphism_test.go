package diagram

import "testing"

func build(edges ...[3]string) *Graph {
	g := New()
	for _, e := range edges {
		_ = g.AddMorphism(e[0], e[1], e[2])
	}
	return g
}

func TestIsomorphic(t *testing.T) {
	tests := []struct {
		name string
		a, b *Graph
		want bool
	}{
		{
			name: "renamed triangle",
			a:    build([3]string{"f", "A", "B"}, [3]string{"g", "B", "C"}, [3]string{"h", "A", "C"}),
			b:    build([3]string{"x", "1", "2"}, [3]string{"y", "2", "3"}, [3]string{"z", "1", "3"}),
			want: true,
		},
		{
			name: "triangle vs cycle",
			a:    build([3]string{"f", "A", "B"}, [3]string{"g", "B", "C"}, [3]string{"h", "A", "C"}),
			b:    build([3]string{"f", "A", "B"}, [3]string{"g", "B", "C"}, [3]string{"h", "C", "A"}),
			want: false,
		},
		{
			name: "parallel multiplicity",
			a:    build([3]string{"f", "A", "B"}, [3]string{"g", "A", "B"}, [3]string{"h", "B", "C"}),
			b:    build([3]string{"f", "A", "B"}, [3]string{"g", "B", "C"}, [3]string{"h", "B", "C"}),
			want: false,
		},
		{
			name: "same signatures different wiring",
			a: build([3]string{"a", "1", "2"}, [3]string{"b", "2", "3"}, [3]string{"c", "3", "4"},
				[3]string{"d", "5", "6"}),
			b: build([3]string{"a", "1", "2"}, [3]string{"b", "2", "3"}, [3]string{"c", "5", "6"},
				[3]string{"d", "6", "4"}),
			want: false,
		},
		{
			name: "different sizes",
			a:    build([3]string{"f", "A", "B"}),
			b:    build([3]string{"f", "A", "B"}, [3]string{"g", "B", "C"}),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Isomorphic(tt.a, tt.b); got != tt.want {
				t.Errorf("Isomorphic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEquivalent(t *testing.T) {
	base := build([3]string{"f", "A", "B"}, [3]string{"g", "B", "C"}, [3]string{"h", "A", "C"})

	tests := []struct {
		name string
		b    *Graph
		want bool
	}{
		{"renamed objects", build([3]string{"f", "0", "1"}, [3]string{"g", "1", "2"}, [3]string{"h", "0", "2"}), true},
		{"renamed morphism", build([3]string{"f", "0", "1"}, [3]string{"g", "1", "2"}, [3]string{"k", "0", "2"}), false},
		{"split object", build([3]string{"f", "0", "1"}, [3]string{"g", "1", "2"}, [3]string{"h", "0", "3"}), false},
		{"extra isolated object", func() *Graph {
			g := build([3]string{"f", "0", "1"}, [3]string{"g", "1", "2"}, [3]string{"h", "0", "2"})
			_ = g.AddObject("9", "")
			return g
		}(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equivalent(base, tt.b); got != tt.want {
				t.Errorf("Equivalent() = %v, want %v", got, tt.want)
			}
		})
	}
}
