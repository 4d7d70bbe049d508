package latex

import (
	"fmt"
	"strings"

	"github.com/matzehuels/commute/pkg/diagram"
)

// Codi renders g for the tikz-cd "codi" package: an \obj grid holding every
// object followed by one \mor line per morphism. Objects appear by display
// label, so labels should be unique for the drawing to be unambiguous.
func Codi(g *diagram.Graph) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\\obj {%s};\n", Matrix(Grid(g)))
	for _, m := range g.Morphisms() {
		fmt.Fprintf(&b, "\\mor %s %s:-> %s;\n", g.Label(m.Domain), m.Name, g.Label(m.Codomain))
	}
	return b.String()
}
