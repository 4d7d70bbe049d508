// Package diagram provides the graph representation of a commutative diagram.
//
// # Overview
//
// A commutative diagram is a directed graph whose nodes are objects and whose
// edges are named morphisms. This package provides [Graph], the shared data
// structure consumed by equation derivation, reconstructed by the equation
// parser, and drawn by the renderers.
//
// Morphism names are unique within a diagram. Re-adding a name with the same
// endpoints is a no-op; re-adding it with different endpoints fails with a
// [*ConflictError] that matches [ErrDuplicateMorphism]. Self-loops are rejected
// with [ErrSelfLoop]. Parallel morphisms between the same two objects are
// allowed.
//
// # Basic Usage
//
// Create a graph with [New] and add morphisms with [Graph.AddMorphism];
// endpoints are created on demand. Display labels are set with
// [Graph.AddObject] or [Graph.SetLabel]:
//
//	g := diagram.New()
//	g.AddMorphism("f", "A", "B")
//	g.AddMorphism("g", "B", "C")
//	g.AddMorphism("h", "A", "C")
//	g.SetLabel("A", `\mathcal{A}`)
//
// Query the structure with [Graph.Out], [Graph.In], [Graph.Successors],
// [Graph.InDegree], [Graph.OutDegree], [Graph.Sources] and [Graph.Sinks].
// Everything enumerates in insertion order, so algorithms built on a Graph are
// deterministic.
//
// # Derived Graphs
//
// [Graph.Reverse] flips every morphism (the dual diagram), [Graph.Subgraph]
// takes the subgraph induced by a set of objects, [Graph.Clone] deep-copies,
// and [Graph.Components] splits the diagram into weakly connected pieces.
//
// # Comparison
//
// [Isomorphic] compares two diagrams as unlabeled directed multigraphs.
// [Equivalent] additionally requires identical morphism names, which is the
// property a round trip through the equation format must preserve.
package diagram
