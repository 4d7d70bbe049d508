// Package corpus holds the named reference diagrams used by tests, the
// `sample` command and the explorer.
//
// Every entry is a shape a person could plausibly draw: triangles, bridges,
// staggered squares, diamonds, cycles and figure-eights. The round trip
// derive -> reconstruct must reproduce each of them, and their reverses.
package corpus

import (
	"fmt"
	"slices"
	"sort"

	"github.com/matzehuels/commute/pkg/diagram"
)

// Edge is one morphism of a corpus diagram.
type Edge struct {
	Name     string
	Domain   string
	Codomain string
}

// Entry is a named reference diagram.
type Entry struct {
	Name        string
	Description string
	Edges       []Edge
}

// Graph builds a fresh diagram from the entry's edges.
func (e Entry) Graph() *diagram.Graph {
	g := diagram.New()
	for _, m := range e.Edges {
		if err := g.AddMorphism(m.Name, m.Domain, m.Codomain); err != nil {
			panic(fmt.Sprintf("corpus %s: %v", e.Name, err))
		}
	}
	return g
}

func e(name, dom, cod string) Edge { return Edge{Name: name, Domain: dom, Codomain: cod} }

var staggered = []Edge{
	e("f", "0", "1"), e("g", "1", "3"), e("h", "3", "4"), e("i", "0", "2"),
	e("j", "2", "3"), e("k", "1", "5"), e("l", "5", "4"),
}

var bulkyDiamond = []Edge{
	e("f", "0", "1"), e("g", "1", "2"), e("h", "2", "3"), e("i", "2", "4"),
	e("j", "0", "5"), e("k", "5", "6"), e("l", "6", "3"), e("m", "6", "4"),
}

var entries = []Entry{
	{
		Name:        "triangle",
		Description: "two paths A -> C, one through B",
		Edges:       []Edge{e("f", "A", "B"), e("g", "B", "C"), e("h", "A", "C")},
	},
	{
		Name:        "chain",
		Description: "a single path with no branching",
		Edges:       []Edge{e("f", "A", "B"), e("g", "B", "C")},
	},
	{
		Name:        "parallel",
		Description: "two parallel morphisms followed by a third",
		Edges:       []Edge{e("f", "0", "1"), e("g", "0", "1"), e("h", "1", "2")},
	},
	{
		Name:        "two-cycle",
		Description: "a pair of opposite morphisms",
		Edges:       []Edge{e("f", "A", "B"), e("g", "B", "A")},
	},
	{
		Name:        "cycle",
		Description: "a directed three-cycle",
		Edges:       []Edge{e("f", "0", "1"), e("g", "1", "2"), e("h", "2", "0")},
	},
	{
		Name:        "bridge",
		Description: "two long paths joined by an inner square",
		Edges: []Edge{
			e("f", "0", "1"), e("g", "1", "2"), e("h", "2", "3"), e("i", "3", "4"),
			e("j", "1", "5"), e("k", "5", "3"), e("l", "0", "6"), e("m", "6", "7"),
			e("n", "7", "4"),
		},
	},
	{
		Name:        "goggles",
		Description: "a bridge with a second inner square downstream",
		Edges: []Edge{
			e("f", "0", "1"), e("g", "1", "2"), e("h", "2", "3"), e("i", "3", "4"),
			e("p", "4", "8"), e("s", "8", "9"), e("q", "3", "10"), e("r", "10", "8"),
			e("j", "1", "5"), e("k", "5", "3"), e("l", "0", "6"), e("m", "6", "7"),
			e("n", "7", "9"),
		},
	},
	{
		Name:        "staggered",
		Description: "two squares sharing the morphism g",
		Edges:       staggered,
	},
	{
		Name:        "doubly-staggered",
		Description: "three squares staggered in a row",
		Edges:       append(slices.Clone(staggered), e("m", "4", "7"), e("n", "3", "6"), e("o", "6", "7")),
	},
	{
		Name:        "limit",
		Description: "the cone and factorisation of a limit",
		Edges: []Edge{
			e("f", "0", "1"), e("g", "0", "2"), e("h", "0", "3"), e("i", "2", "1"),
			e("j", "2", "3"),
		},
	},
	{
		Name:        "example-fig",
		Description: "three objects over a common target",
		Edges: []Edge{
			e("f", "1", "0"), e("g", "2", "0"), e("h", "3", "0"), e("i", "1", "2"),
			e("j", "3", "2"),
		},
	},
	{
		Name:        "house",
		Description: "a square with a triangular roof",
		Edges: []Edge{
			e("f", "0", "1"), e("g", "1", "2"), e("h", "0", "3"), e("i", "3", "5"),
			e("j", "3", "4"), e("k", "4", "5"), e("l", "5", "2"),
		},
	},
	{
		Name:        "intro",
		Description: "the introductory figure with a second source",
		Edges: []Edge{
			e("f", "0", "1"), e("g", "1", "2"), e("h", "0", "3"), e("i", "3", "2"),
			e("j", "0", "4"), e("k", "4", "3"), e("l", "3", "5"), e("m", "5", "2"),
			e("n", "6", "4"), e("p", "6", "5"),
		},
	},
	{
		Name:        "cycle-triangles",
		Description: "a fan of triangles around one source",
		Edges: []Edge{
			e("f", "0", "1"), e("g", "0", "2"), e("h", "0", "3"), e("i", "1", "2"),
			e("j", "2", "3"),
		},
	},
	{
		Name:        "bulky-diamond",
		Description: "two paths splitting to a pair of shared targets",
		Edges:       bulkyDiamond,
	},
	{
		Name:        "bulkier-diamond",
		Description: "a bulky diamond with a third shared target",
		Edges:       append(slices.Clone(bulkyDiamond), e("n", "2", "7"), e("p", "6", "7")),
	},
	{
		Name:        "three-branches",
		Description: "three parallel paths of length two",
		Edges: []Edge{
			e("f", "0", "1"), e("g", "1", "2"), e("h", "0", "3"), e("i", "3", "2"),
			e("j", "0", "4"), e("k", "4", "2"),
		},
	},
	{
		Name:        "figure-eight",
		Description: "two squares joined at one object",
		Edges: []Edge{
			e("f", "0", "1"), e("g", "1", "2"), e("h", "0", "3"), e("i", "3", "2"),
			e("j", "2", "4"), e("k", "4", "5"), e("l", "2", "6"), e("m", "6", "5"),
		},
	},
	{
		Name:        "wedge",
		Description: "a four-cycle with a chord forming a triangle",
		Edges: []Edge{
			e("f", "0", "1"), e("g", "1", "2"), e("h", "2", "3"), e("i", "3", "0"),
			e("j", "3", "4"), e("k", "4", "0"),
		},
	},
}

var byName = func() map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, en := range entries {
		m[en.Name] = en
	}
	return m
}()

// All returns every entry in definition order.
func All() []Entry { return slices.Clone(entries) }

// Names returns the entry names sorted alphabetically.
func Names() []string {
	names := make([]string, 0, len(entries))
	for _, en := range entries {
		names = append(names, en.Name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the entry with the given name.
func Lookup(name string) (Entry, bool) {
	en, ok := byName[name]
	return en, ok
}

// Graph builds the named diagram, or returns nil if no entry has that name.
func Graph(name string) *diagram.Graph {
	en, ok := byName[name]
	if !ok {
		return nil
	}
	return en.Graph()
}
