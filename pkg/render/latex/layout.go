package latex

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/commute/pkg/diagram"
)

const (
	DefaultScale      = 4.0
	DefaultIterations = 50
	DefaultSeed       = 42
)

// Point is a position in layout coordinates.
type Point struct {
	X, Y float64
}

// LayoutOptions configures [SpringLayout].
type LayoutOptions struct {
	// Scale is the half-width of the box the layout is fitted to.
	Scale float64
	// Iterations is the number of force simulation steps.
	Iterations int
	// Seed fixes the initial placement. Equal seeds give equal layouts.
	Seed uint64
}

func (o LayoutOptions) withDefaults() LayoutOptions {
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Iterations <= 0 {
		o.Iterations = DefaultIterations
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	return o
}

// SpringLayout positions the objects of g with the Fruchterman-Reingold
// force-directed algorithm, treating morphisms as undirected springs. The
// result is centered on the origin and scaled so the largest coordinate
// magnitude equals opts.Scale.
func SpringLayout(g *diagram.Graph, opts LayoutOptions) map[string]Point {
	opts = opts.withDefaults()
	ids := g.ObjectIDs()
	n := len(ids)
	pos := make(map[string]Point, n)
	switch n {
	case 0:
		return pos
	case 1:
		pos[ids[0]] = Point{}
		return pos
	}

	index := make(map[string]int, n)
	for i, id := range ids {
		index[id] = i
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	xs := make([]Point, n)
	for i := range xs {
		xs[i] = Point{rng.Float64(), rng.Float64()}
	}

	k := math.Sqrt(1.0 / float64(n))
	temp := 0.1
	cool := temp / float64(opts.Iterations+1)
	disp := make([]Point, n)

	for range opts.Iterations {
		clear(disp)
		for i := range n {
			for j := i + 1; j < n; j++ {
				dx, dy, d := delta(xs[i], xs[j])
				f := k * k / d
				disp[i].X += dx / d * f
				disp[i].Y += dy / d * f
				disp[j].X -= dx / d * f
				disp[j].Y -= dy / d * f
			}
		}
		for _, m := range g.Morphisms() {
			i, j := index[m.Domain], index[m.Codomain]
			dx, dy, d := delta(xs[i], xs[j])
			f := d * d / k
			disp[i].X -= dx / d * f
			disp[i].Y -= dy / d * f
			disp[j].X += dx / d * f
			disp[j].Y += dy / d * f
		}
		for i := range xs {
			l := math.Max(math.Hypot(disp[i].X, disp[i].Y), 0.01)
			step := math.Min(l, temp)
			xs[i].X += disp[i].X / l * step
			xs[i].Y += disp[i].Y / l * step
		}
		temp -= cool
	}

	rescale(xs, opts.Scale)
	for i, id := range ids {
		pos[id] = xs[i]
	}
	return pos
}

func delta(a, b Point) (dx, dy, d float64) {
	dx, dy = a.X-b.X, a.Y-b.Y
	return dx, dy, math.Max(math.Hypot(dx, dy), 0.01)
}

func rescale(xs []Point, scale float64) {
	var cx, cy float64
	for _, p := range xs {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(xs))
	cy /= float64(len(xs))

	var lim float64
	for i := range xs {
		xs[i].X -= cx
		xs[i].Y -= cy
		lim = math.Max(lim, math.Max(math.Abs(xs[i].X), math.Abs(xs[i].Y)))
	}
	if lim == 0 {
		return
	}
	for i := range xs {
		xs[i].X *= scale / lim
		xs[i].Y *= scale / lim
	}
}
