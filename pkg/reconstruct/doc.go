// Package reconstruct rebuilds a diagram from composition equations.
//
// # Overview
//
// An equation line such as
//
//	{h}{g}{f} = {k}
//
// says that h∘g∘f and k are parallel: they share a domain and a codomain.
// Inside a composite, the codomain of f is the domain of g and so on. Each
// of these facts identifies two object ids, and [Builder] merges them with a
// disjoint-set structure as soon as it reads them. The result is the
// smallest diagram in which every line makes sense.
//
// # Usage
//
//	g, err := reconstruct.FromText("{g}{f} = {h}\n")
//	// g has 3 objects and 3 morphisms
//
// For incremental use, feed lines to a [Builder]:
//
//	b := reconstruct.NewBuilder()
//	for _, eq := range eqs {
//	    if err := b.Add(eq); err != nil {
//	        return err
//	    }
//	}
//	g := b.Graph()
//
// # Unification
//
// When two ids merge, the one with fewer incident morphisms is contracted
// into the other and every morphism that referenced it is redirected. Ties
// keep the older id. Because merging is transitive, the final diagram is the
// same up to isomorphism for any order of lines, and adding a line twice has
// no effect.
//
// A line that would force some morphism's domain and codomain together is
// rejected with ErrCodeDuplicateMorphism: diagrams have no self-loops.
//
// # Limits
//
// A morphism that appears in no line cannot be recovered, and neither can
// an object without morphisms. Derivation always mentions every morphism,
// so this only matters for hand-written input.
package reconstruct
