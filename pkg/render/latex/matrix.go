package latex

import (
	"math"
	"strings"

	"github.com/matzehuels/commute/pkg/diagram"
)

// Matrix joins rows into LaTeX matrix body syntax: cells separated by " & "
// and rows by " \\ ".
func Matrix(rows [][]string) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, " & ")
	}
	return strings.Join(lines, ` \\ `)
}

// Grid places the display labels of g's objects row by row in a square
// grid of ceil(sqrt(n)) columns. Unused trailing cells are empty strings.
// Only as many rows as needed are returned.
func Grid(g *diagram.Graph) [][]string {
	objects := g.Objects()
	n := len(objects)
	if n == 0 {
		return nil
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := make([][]string, 0, (n+cols-1)/cols)
	for i, o := range objects {
		if i%cols == 0 {
			rows = append(rows, make([]string, cols))
		}
		rows[len(rows)-1][i%cols] = o.DisplayLabel()
	}
	return rows
}
