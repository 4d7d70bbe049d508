package diagram

import "slices"

// Isomorphic reports whether a and b are isomorphic as directed multigraphs:
// there is a bijection between their objects that preserves the number of
// morphisms between every ordered pair of objects. Morphism names and object
// labels are ignored.
//
// The search is a backtracking matcher pruned by (in-degree, out-degree)
// signatures. Diagrams are small, so worst-case exponential time is
// acceptable.
func Isomorphic(a, b *Graph) bool {
	if a.ObjectCount() != b.ObjectCount() || a.MorphismCount() != b.MorphismCount() {
		return false
	}
	if !sameSignatures(a, b) {
		return false
	}

	order := matchOrder(a)
	ma, mb := multiplicities(a), multiplicities(b)
	mapping := make(map[string]string, len(order))
	used := make(map[string]bool, len(order))
	candidates := b.ObjectIDs()

	var match func(i int) bool
	match = func(i int) bool {
		if i == len(order) {
			return true
		}
		u := order[i]
		for _, v := range candidates {
			if used[v] || signature(a, u) != signature(b, v) {
				continue
			}
			if !consistent(u, v, mapping, ma, mb) {
				continue
			}
			mapping[u] = v
			used[v] = true
			if match(i + 1) {
				return true
			}
			delete(mapping, u)
			used[v] = false
		}
		return false
	}
	return match(0)
}

// Equivalent reports whether a and b describe the same diagram up to object
// renaming: both contain exactly the same morphism names, there is a
// bijection of objects carrying every morphism's endpoints in a to its
// endpoints in b, and both have the same number of objects.
//
// Equivalent is stricter than [Isomorphic]: it is the check used to verify
// that reconstructing derived equations reproduces the original diagram.
func Equivalent(a, b *Graph) bool {
	if a.ObjectCount() != b.ObjectCount() || a.MorphismCount() != b.MorphismCount() {
		return false
	}
	fwd := make(map[string]string)
	rev := make(map[string]string)
	bind := func(x, y string) bool {
		if got, ok := fwd[x]; ok && got != y {
			return false
		}
		if got, ok := rev[y]; ok && got != x {
			return false
		}
		fwd[x], rev[y] = y, x
		return true
	}
	for _, m := range a.Morphisms() {
		n, ok := b.Morphism(m.Name)
		if !ok {
			return false
		}
		if !bind(m.Domain, n.Domain) || !bind(m.Codomain, n.Codomain) {
			return false
		}
	}
	return true
}

type degree struct{ in, out int }

func signature(g *Graph, id string) degree {
	return degree{in: g.InDegree(id), out: g.OutDegree(id)}
}

func sameSignatures(a, b *Graph) bool {
	count := make(map[degree]int)
	for _, id := range a.order {
		count[signature(a, id)]++
	}
	for _, id := range b.order {
		count[signature(b, id)]--
	}
	for _, c := range count {
		if c != 0 {
			return false
		}
	}
	return true
}

type pair struct{ from, to string }

func multiplicities(g *Graph) map[pair]int {
	m := make(map[pair]int, len(g.names))
	for _, name := range g.names {
		mo := g.morphs[name]
		m[pair{mo.Domain, mo.Codomain}]++
	}
	return m
}

// consistent checks the edge counts between u and every already-mapped
// object against the counts between their images.
func consistent(u, v string, mapping map[string]string, ma, mb map[pair]int) bool {
	for x, y := range mapping {
		if ma[pair{u, x}] != mb[pair{v, y}] || ma[pair{x, u}] != mb[pair{y, v}] {
			return false
		}
	}
	return true
}

// matchOrder lists objects breadth-first per component so every object after
// the first of its component has an already-mapped neighbour, which lets
// consistent prune early.
func matchOrder(g *Graph) []string {
	var order []string
	seen := make(map[string]bool, len(g.order))
	for _, start := range g.order {
		if seen[start] {
			continue
		}
		seen[start] = true
		queue := []string{start}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			order = append(order, id)
			next := g.neighbors(id)
			slices.Sort(next)
			for _, n := range next {
				if !seen[n] {
					seen[n] = true
					queue = append(queue, n)
				}
			}
		}
	}
	return order
}
