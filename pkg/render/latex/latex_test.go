package latex

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/commute/pkg/diagram"
)

func triangle() *diagram.Graph {
	g := diagram.New()
	_ = g.AddMorphism("f", "A", "B")
	_ = g.AddMorphism("g", "B", "C")
	_ = g.AddMorphism("h", "A", "C")
	return g
}

func TestMatrix(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want string
	}{
		{"empty", nil, ""},
		{"single", [][]string{{"A"}}, "A"},
		{"square", [][]string{{"A", "B"}, {"C", "D"}}, `A & B \\ C & D`},
		{"padded", [][]string{{"A", "B"}, {"C", ""}}, `A & B \\ C & `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matrix(tt.rows); got != tt.want {
				t.Errorf("Matrix() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGrid(t *testing.T) {
	g := diagram.New()
	for _, id := range []string{"A", "B", "C", "D", "E"} {
		_ = g.AddObject(id, "")
	}
	rows := Grid(g)
	if len(rows) != 2 {
		t.Fatalf("Grid() has %d rows, want 2", len(rows))
	}
	if got := Matrix(rows); got != `A & B & C \\ D & E & ` {
		t.Errorf("Grid() = %q", got)
	}
	if Grid(diagram.New()) != nil {
		t.Error("Grid() of an empty diagram should be nil")
	}
}

func TestCodi(t *testing.T) {
	g := triangle()
	_ = g.SetLabel("A", `\mathcal{A}`)

	want := `\obj {\mathcal{A} & B \\ C & };
\mor \mathcal{A} f:-> B;
\mor B g:-> C;
\mor \mathcal{A} h:-> C;
`
	if got := Codi(g); got != want {
		t.Errorf("Codi() =\n%s\nwant\n%s", got, want)
	}
}

func TestSpringLayout(t *testing.T) {
	g := triangle()
	a := SpringLayout(g, LayoutOptions{Seed: 7})
	b := SpringLayout(g, LayoutOptions{Seed: 7})
	if len(a) != 3 {
		t.Fatalf("SpringLayout() placed %d objects, want 3", len(a))
	}

	var lim float64
	for id, p := range a {
		if b[id] != p {
			t.Errorf("position of %s differs between runs: %v vs %v", id, p, b[id])
		}
		lim = math.Max(lim, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	if math.Abs(lim-DefaultScale) > 1e-9 {
		t.Errorf("largest coordinate = %v, want %v", lim, DefaultScale)
	}
	if a["A"] == a["B"] || a["B"] == a["C"] {
		t.Error("distinct objects share a position")
	}
}

func TestSpringLayoutSmall(t *testing.T) {
	if got := SpringLayout(diagram.New(), LayoutOptions{}); len(got) != 0 {
		t.Errorf("empty layout = %v", got)
	}
	g := diagram.New()
	_ = g.AddObject("X", "")
	if got := SpringLayout(g, LayoutOptions{}); got["X"] != (Point{}) {
		t.Errorf("single object at %v, want origin", got["X"])
	}
}

func TestTikZ(t *testing.T) {
	g := triangle()
	_ = g.AddMorphism("k", "A", "B")
	pos := map[string]Point{"A": {0, 0}, "B": {4, 0}, "C": {4, -4}}

	out := TikZ(g, TikZOptions{Positions: pos})
	for _, want := range []string{
		`\begin{tikzpicture}`,
		`\node (n0) at (0.000, 0.000) {$A$};`,
		`\node (n2) at (4.000, -4.000) {$C$};`,
		`\draw[->] (n0) to node[auto] {$f$} (n1);`,
		`\draw[->] (n1) to node[auto] {$g$} (n2);`,
		`\draw[->, bend left=20] (n0) to node[auto] {$k$} (n1);`,
		`\end{tikzpicture}`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("TikZ() missing %q:\n%s", want, out)
		}
	}
}
