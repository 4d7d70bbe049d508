// Package pkg provides the core libraries for Commute, a converter between
// commutative diagrams and the composition equations that describe them.
//
// # Overview
//
// A commutative diagram is a directed multigraph whose objects are joined by
// named morphisms. Commute derives the smallest set of equations such as
// {g}{f} = {h} (g after f equals h) from which the diagram can be rebuilt,
// and rebuilds diagrams from such equations. The pkg directory is organized
// into four main areas:
//
//  1. [diagram], [equation] - Domain types (graphs, composites, equations)
//  2. [derive], [reconstruct] - The two directions of the conversion
//  3. [dsl], [io], [render] - Text formats in and out
//  4. [pipeline], [cache], [store] - Orchestration and persistence
//
// # Architecture
//
// The typical data flow through Commute:
//
//	{f}{A}{B} lines            {g}{f} = {h} lines
//	       ↓                          ↓
//	  [dsl] parser              [dsl] parser
//	       ↓                          ↓
//	 [diagram].Graph  ←──  [reconstruct] union-find
//	       ↓
//	 [derive] traversal  ──→  minimal equations
//	       ↓
//	 [render] codi, TikZ, Graphviz, PDF/PNG
//
// # Quick Start
//
// Derive equations and rebuild the diagram:
//
//	import (
//	    "github.com/matzehuels/commute/pkg/derive"
//	    "github.com/matzehuels/commute/pkg/diagram"
//	    "github.com/matzehuels/commute/pkg/dsl"
//	    "github.com/matzehuels/commute/pkg/reconstruct"
//	)
//
//	g, _ := dsl.ParseDiagram("{f}{A}{B}\n{g}{B}{C}\n{h}{A}{C}\n")
//	res, _ := derive.Equations(g, derive.Options{})
//	fmt.Print(res) // {g}{f} = {h}
//
//	back, _ := reconstruct.FromText(res.String())
//	diagram.Equivalent(g, back) // true
//
// # Main Packages
//
// [diagram] - Insertion-ordered directed multigraph with at most one
// morphism per name. [diagram/transform] classifies objects into branch and
// merge points, condenses pass-through paths and finds the cycle basis.
//
// [derive] - Depth-first search from branch objects that emits one equation
// per pair of paths meeting again, plus the links needed to connect the
// resulting squares.
//
// [reconstruct] - Incremental builder that glues morphisms end to end with a
// union-find over object slots.
//
// [render] - Output formats: [render/latex] for the codi and TikZ packages
// and [render/nodelink] for Graphviz, with SVG to PDF/PNG conversion.
//
// [pipeline] - Cached derive, reconstruct, render and check operations used
// by both the CLI and the HTTP server.
//
// [cache] - Compressed file and Redis caches keyed by content hash.
//
// [store] - Named diagrams on disk or in MongoDB.
//
// [diagram]: https://pkg.go.dev/github.com/matzehuels/commute/pkg/diagram
// [diagram/transform]: https://pkg.go.dev/github.com/matzehuels/commute/pkg/diagram/transform
// [equation]: https://pkg.go.dev/github.com/matzehuels/commute/pkg/equation
// [derive]: https://pkg.go.dev/github.com/matzehuels/commute/pkg/derive
// [reconstruct]: https://pkg.go.dev/github.com/matzehuels/commute/pkg/reconstruct
// [dsl]: https://pkg.go.dev/github.com/matzehuels/commute/pkg/dsl
// [io]: https://pkg.go.dev/github.com/matzehuels/commute/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/commute/pkg/render
// [render/latex]: https://pkg.go.dev/github.com/matzehuels/commute/pkg/render/latex
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/commute/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/commute/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/commute/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/commute/pkg/store
package pkg
