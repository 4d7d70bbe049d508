// Package transform provides structural analyses of commutative diagrams.
//
// # Overview
//
// Equation derivation only cares about where paths diverge and converge.
// This package provides the degree-based vocabulary for that, plus two
// reductions that expose a diagram's skeleton:
//
//   - [Classify] labels an object as a branch point, a merge point, both or
//     neither
//   - [CycleBasis] decomposes the underlying undirected multigraph into a
//     minimum set of elementary cycles
//   - [Condense] contracts pass-through objects into composite morphisms
//
// # Branch and Merge Points
//
// A branch point has out-degree > 1 or in-degree 0 (paths start or fork
// there). A merge point has in-degree > 1 or out-degree 0 (paths end or join
// there). An equation exists for every (branch, merge) pair joined by two or
// more distinct directed paths.
//
// # Cycle Basis
//
// Every independent undirected cycle of a diagram corresponds to one
// commutativity constraint, so [CycleRank] is an upper bound on the number of
// non-trivial equations a diagram needs. [CycleBasis] returns a minimum basis
// built from Horton candidates:
//
//	basis := transform.CycleBasis(g)
//	for _, c := range basis {
//	    fmt.Println(c.Objects, c.Morphisms)
//	}
//
// [BackEdges] reports the morphisms that close directed cycles.
//
// # Condensation
//
// [Condense] repeatedly replaces u -a-> v -b-> w, where v has exactly one
// incoming and one outgoing morphism, by u -{b}{a}-> w. Contractions that
// would create a self-loop are skipped; contractions that would duplicate an
// existing u -> w morphism record an equation instead:
//
//	s := transform.Condense(g)
//	fmt.Println(s.Graph.MorphismCount(), s.Equations)
package transform
