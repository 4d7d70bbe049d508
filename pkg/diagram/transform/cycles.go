package transform

import (
	"math/bits"
	"slices"

	"github.com/matzehuels/commute/pkg/diagram"
)

// Cycle is an elementary cycle of the diagram's underlying undirected
// multigraph. Objects lists the cycle's objects in traversal order starting
// from its anchor; Morphisms lists the morphisms on the cycle in the same
// order, so Morphisms[i] joins Objects[i] and Objects[(i+1)%len].
type Cycle struct {
	Objects   []string
	Morphisms []string
}

// Len returns the number of morphisms on the cycle.
func (c Cycle) Len() int { return len(c.Morphisms) }

// CycleRank returns the dimension of the cycle space of g's underlying
// undirected multigraph: morphisms - objects + components.
func CycleRank(g *diagram.Graph) int {
	return g.MorphismCount() - g.ObjectCount() + len(g.Components())
}

// CycleBasis returns a minimum cycle basis of g's underlying undirected
// multigraph: [CycleRank] elementary cycles, independent over GF(2), with
// the smallest possible total length. Parallel morphisms form cycles of
// length two. Direction is ignored.
//
// Candidates are Horton cycles (shortest path tree from every object closed by
// one non-tree morphism), accepted greedily by length after Gaussian
// elimination over GF(2). The result is deterministic for a given insertion
// order.
func CycleBasis(g *diagram.Graph) []Cycle {
	rank := CycleRank(g)
	if rank <= 0 {
		return nil
	}

	morphs := g.Morphisms()
	index := make(map[string]int, len(morphs))
	for i, m := range morphs {
		index[m.Name] = i
	}

	type candidate struct {
		cycle Cycle
		bits  bitset
	}
	var cands []candidate
	seen := make(map[string]bool)

	for _, root := range g.ObjectIDs() {
		tree := shortestPathTree(g, root)
		for _, m := range morphs {
			x, y := m.Domain, m.Codomain
			if _, ok := tree.depth[x]; !ok {
				continue
			}
			if tree.parentEdge[x] == m.Name || tree.parentEdge[y] == m.Name {
				continue
			}
			if x != root && y != root && tree.branch[x] == tree.branch[y] {
				continue
			}
			c := tree.close(x, y, m.Name)
			b := newBitset(len(morphs))
			for _, name := range c.Morphisms {
				b.flip(index[name])
			}
			key := b.key()
			if seen[key] {
				continue
			}
			seen[key] = true
			cands = append(cands, candidate{cycle: c, bits: b})
		}
	}

	slices.SortStableFunc(cands, func(a, b candidate) int {
		return a.cycle.Len() - b.cycle.Len()
	})

	var basis []Cycle
	var reduced []bitset
	var pivots []int
	for _, c := range cands {
		v := c.bits.clone()
		for i, r := range reduced {
			if v.has(pivots[i]) {
				v.xor(r)
			}
		}
		p := v.lowest()
		if p < 0 {
			continue
		}
		for i, r := range reduced {
			if r.has(p) {
				r.xor(v)
				reduced[i] = r
			}
		}
		reduced = append(reduced, v)
		pivots = append(pivots, p)
		basis = append(basis, c.cycle)
		if len(basis) == rank {
			break
		}
	}
	return basis
}

// BackEdges returns the morphisms that close a directed cycle in a
// depth-first traversal started from sources first, then from any object
// left unvisited. An empty result means g is acyclic.
func BackEdges(g *diagram.Graph) []string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int)
	var back []string

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, m := range g.Out(id) {
			switch color[m.Codomain] {
			case white:
				dfs(m.Codomain)
			case gray:
				back = append(back, m.Name)
			}
		}
		color[id] = black
	}

	for _, id := range g.Sources() {
		if color[id] == white {
			dfs(id)
		}
	}
	for _, id := range g.ObjectIDs() {
		if color[id] == white {
			dfs(id)
		}
	}
	return back
}

type spTree struct {
	root       string
	depth      map[string]int
	parent     map[string]string
	parentEdge map[string]string
	branch     map[string]string // first object below root on the tree path
}

func shortestPathTree(g *diagram.Graph, root string) spTree {
	t := spTree{
		root:       root,
		depth:      map[string]int{root: 0},
		parent:     make(map[string]string),
		parentEdge: make(map[string]string),
		branch:     map[string]string{root: root},
	}
	queue := []string{root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visit := func(m diagram.Morphism, next string) {
			if _, ok := t.depth[next]; ok {
				return
			}
			t.depth[next] = t.depth[id] + 1
			t.parent[next] = id
			t.parentEdge[next] = m.Name
			if id == root {
				t.branch[next] = next
			} else {
				t.branch[next] = t.branch[id]
			}
			queue = append(queue, next)
		}
		for _, m := range g.Out(id) {
			visit(m, m.Codomain)
		}
		for _, m := range g.In(id) {
			visit(m, m.Domain)
		}
	}
	return t
}

// close builds the cycle root ~> x, x -e- y, y ~> root.
func (t spTree) close(x, y, edge string) Cycle {
	up := func(id string) (objs, edges []string) {
		for id != t.root {
			objs = append(objs, id)
			edges = append(edges, t.parentEdge[id])
			id = t.parent[id]
		}
		return objs, edges
	}
	xo, xe := up(x)
	yo, ye := up(y)
	slices.Reverse(xo)
	slices.Reverse(xe)

	c := Cycle{Objects: []string{t.root}}
	c.Objects = append(c.Objects, xo...)
	c.Morphisms = append(c.Morphisms, xe...)
	c.Morphisms = append(c.Morphisms, edge)
	c.Objects = append(c.Objects, yo...)
	c.Morphisms = append(c.Morphisms, ye...)
	return c
}

type bitset []uint64

func newBitset(n int) bitset { return make(bitset, (n+63)/64) }

func (b bitset) flip(i int)     { b[i/64] ^= 1 << (i % 64) }
func (b bitset) has(i int) bool { return b[i/64]&(1<<(i%64)) != 0 }
func (b bitset) clone() bitset  { return slices.Clone(b) }

func (b bitset) xor(o bitset) {
	for i := range b {
		b[i] ^= o[i]
	}
}

func (b bitset) lowest() int {
	for i, w := range b {
		if w != 0 {
			return i*64 + bits.TrailingZeros64(w)
		}
	}
	return -1
}

func (b bitset) key() string {
	buf := make([]byte, 0, len(b)*8)
	for _, w := range b {
		for s := 0; s < 64; s += 8 {
			buf = append(buf, byte(w>>s))
		}
	}
	return string(buf)
}
