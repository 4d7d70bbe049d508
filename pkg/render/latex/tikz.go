package latex

import (
	"fmt"
	"strings"

	"github.com/matzehuels/commute/pkg/diagram"
)

// TikZOptions configures [TikZ].
type TikZOptions struct {
	LayoutOptions

	// Positions overrides the spring layout when non-nil. Objects missing
	// from the map are placed at the origin.
	Positions map[string]Point
}

// TikZ renders g as a tikzpicture environment. Each object becomes a named
// node and each morphism a labelled arrow. Parallel morphisms after the first
// between the same pair of objects are drawn with increasing bends.
func TikZ(g *diagram.Graph, opts TikZOptions) string {
	pos := opts.Positions
	if pos == nil {
		pos = SpringLayout(g, opts.LayoutOptions)
	}

	node := make(map[string]string, g.ObjectCount())
	var b strings.Builder
	b.WriteString("\\begin{tikzpicture}\n")
	for i, o := range g.Objects() {
		node[o.ID] = fmt.Sprintf("n%d", i)
		p := pos[o.ID]
		fmt.Fprintf(&b, "  \\node (%s) at (%.3f, %.3f) {$%s$};\n", node[o.ID], p.X, p.Y, o.DisplayLabel())
	}

	type span struct{ from, to string }
	seen := make(map[span]int)
	for _, m := range g.Morphisms() {
		s := span{m.Domain, m.Codomain}
		opt := "->"
		if k := seen[s]; k > 0 {
			opt = fmt.Sprintf("->, bend left=%d", 20*k)
		}
		seen[s]++
		fmt.Fprintf(&b, "  \\draw[%s] (%s) to node[auto] {$%s$} (%s);\n", opt, node[m.Domain], m.Name, node[m.Codomain])
	}
	b.WriteString("\\end{tikzpicture}\n")
	return b.String()
}
