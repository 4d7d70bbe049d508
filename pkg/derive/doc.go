// Package derive computes the composition equations of a diagram.
//
// # Overview
//
// The output of [Equations] is the set of lines reconstruct.FromText needs
// to rebuild the diagram: one line per pair of objects joined by several
// distinct paths, plus a self-equality line for every cycle and for every
// chain of morphisms no such pair accounts for.
//
//	r, err := derive.Equations(g, derive.Options{})
//	for _, line := range r.Lines() {
//	    fmt.Println(line) // {g}{f} = {h}
//	}
//
// # Algorithm
//
// Objects are classified as branch points (out-degree > 1 or no incoming
// morphisms) and merge points (in-degree > 1 or no outgoing morphisms).
// A depth-first search starts at every branch point, sources first, and
// records each path from a branch point on the current path to a merge point
// reached. Each merge point also remembers which merge points lie below it.
//
// When the search reaches an object an earlier search already expanded, it
// does not descend again. It records the new path to that object and splices
// the remembered descendants onto the current path instead. Recording stops
// at the first branch point that already had a path there, which keeps the
// number of paths per pair small.
//
// Pairs with two or more paths become equations. A pair with one path that
// starts and ends at the same object is a cycle and becomes a self-equality
// such as {f}{h}{g}{f}. Runs of morphisms on the remaining single-path pairs
// that no equation mentions become self-equalities such as {g}{f}.
//
// # Parallel Morphisms
//
// Morphisms with the same domain and codomain produce a line {f} = {g}. The
// search itself only follows the first of them.
//
// # Limits
//
// The search recurses once per object on a path. [Options.MaxDepth] bounds
// that depth; longer paths fail with ErrCodeLimitExceeded. Objects without
// any morphism cannot be expressed as equations and are not reported.
package derive
