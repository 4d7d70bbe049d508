package io

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/commute/pkg/diagram"
	"github.com/matzehuels/commute/pkg/errors"
)

// Format names a serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Document is the wire form of a diagram.
type Document struct {
	Objects   []Object   `json:"objects" yaml:"objects"`
	Morphisms []Morphism `json:"morphisms" yaml:"morphisms"`
}

// Object is the wire form of a diagram object. Label is omitted when the
// object is displayed by its ID.
type Object struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Morphism is the wire form of a morphism.
type Morphism struct {
	Name string `json:"name" yaml:"name"`
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// FromGraph converts g to its wire form, preserving insertion order.
func FromGraph(g *diagram.Graph) Document {
	doc := Document{
		Objects:   make([]Object, 0, g.ObjectCount()),
		Morphisms: make([]Morphism, 0, g.MorphismCount()),
	}
	for _, o := range g.Objects() {
		doc.Objects = append(doc.Objects, Object{ID: o.ID, Label: o.Label})
	}
	for _, m := range g.Morphisms() {
		doc.Morphisms = append(doc.Morphisms, Morphism{Name: m.Name, From: m.Domain, To: m.Codomain})
	}
	return doc
}

// Graph builds a diagram from the document. Objects referenced only by
// morphisms are created on the fly.
func (d Document) Graph() (*diagram.Graph, error) {
	g := diagram.New()
	for _, o := range d.Objects {
		if err := g.AddObject(o.ID, o.Label); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDiagram, err, "object %q", o.ID)
		}
	}
	for _, m := range d.Morphisms {
		if err := g.AddMorphism(m.Name, m.From, m.To); err != nil {
			code := errors.ErrCodeInvalidDiagram
			var conflict *diagram.ConflictError
			if stderrors.As(err, &conflict) {
				code = errors.ErrCodeDuplicateMorphism
			}
			return nil, errors.Wrap(code, err, "morphism %s: %s -> %s", m.Name, m.From, m.To)
		}
	}
	return g, nil
}

// WriteJSON encodes g as indented JSON.
func WriteJSON(g *diagram.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a diagram from JSON. It does not close r.
func ReadJSON(r io.Reader) (*diagram.Graph, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return doc.Graph()
}

// WriteYAML encodes g as YAML.
func WriteYAML(g *diagram.Graph, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FromGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// ReadYAML decodes a diagram from YAML. It does not close r.
func ReadYAML(r io.Reader) (*diagram.Graph, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
	}
	return doc.Graph()
}

// Write encodes g in the given format.
func Write(g *diagram.Graph, w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		return WriteJSON(g, w)
	case FormatYAML:
		return WriteYAML(g, w)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported interchange format %q", f)
	}
}

// Read decodes a diagram in the given format.
func Read(r io.Reader, f Format) (*diagram.Graph, error) {
	switch f {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported interchange format %q", f)
	}
}

// FormatFromPath picks the format from a file extension: .json, or .yaml
// and .yml. The second result is false for any other extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	}
	return "", false
}

// Export writes g to path in the format implied by its extension.
func Export(g *diagram.Graph, path string) error {
	f, ok := FormatFromPath(path)
	if !ok {
		return errors.New(errors.ErrCodeInvalidFormat, "cannot infer format from %s", path)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	return Write(g, out, f)
}

// Import reads a diagram from path in the format implied by its extension.
func Import(path string) (*diagram.Graph, error) {
	f, ok := FormatFromPath(path)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "cannot infer format from %s", path)
	}
	in, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer in.Close()
	return Read(in, f)
}
