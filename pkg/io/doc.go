// Package io provides JSON and YAML interchange for diagrams.
//
// # Format
//
// Both encodings share one document shape:
//
//	{
//	  "objects": [
//	    {"id": "A", "label": "\\mathcal{A}"},
//	    {"id": "B"}
//	  ],
//	  "morphisms": [
//	    {"name": "f", "from": "A", "to": "B"}
//	  ]
//	}
//
// Objects keep their insertion order. Objects used only by morphisms may be
// left out of "objects"; they are created when the morphism is read. Listing
// an object explicitly is the only way to keep an object without morphisms.
//
// # Usage
//
//	g, err := io.Import("triangle.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = io.Export(g, "triangle.json")
//
// [Read] and [Write] work on any reader or writer given a [Format]; the
// extension helpers pick the format from .json, .yaml or .yml.
//
// Decoding errors are INVALID_FORMAT; structural problems such as a
// self-loop are INVALID_DIAGRAM, and a morphism name bound to two different
// pairs of objects is DUPLICATE_MORPHISM.
package io
