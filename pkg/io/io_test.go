package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/commute/pkg/diagram"
	"github.com/matzehuels/commute/pkg/errors"
)

func sample() *diagram.Graph {
	g := diagram.New()
	_ = g.AddObject("A", `\mathcal{A}`)
	_ = g.AddMorphism("f", "A", "B")
	_ = g.AddMorphism("g", "B", "C")
	_ = g.AddMorphism("h", "A", "C")
	_ = g.AddObject("Z", "")
	return g
}

func TestRoundTrip(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(sample(), &buf, f); err != nil {
				t.Fatalf("Write() error: %v", err)
			}
			g, err := Read(&buf, f)
			if err != nil {
				t.Fatalf("Read() error: %v", err)
			}
			if !diagram.Equivalent(sample(), g) {
				t.Error("round trip changed the diagram")
			}
			if g.Label("A") != `\mathcal{A}` {
				t.Errorf("Label(A) = %q", g.Label("A"))
			}
			if !g.HasObject("Z") {
				t.Error("isolated object lost")
			}
		})
	}
}

func TestReadJSON(t *testing.T) {
	in := `{"morphisms": [{"name": "f", "from": "A", "to": "B"}]}`
	g, err := ReadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if g.ObjectCount() != 2 || g.MorphismCount() != 1 {
		t.Errorf("got %d objects, %d morphisms, want 2, 1", g.ObjectCount(), g.MorphismCount())
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code errors.Code
	}{
		{"malformed", `{"objects": [`, errors.ErrCodeInvalidFormat},
		{"self-loop", `{"morphisms": [{"name": "f", "from": "A", "to": "A"}]}`, errors.ErrCodeInvalidDiagram},
		{"conflict", `{"morphisms": [{"name": "f", "from": "A", "to": "B"}, {"name": "f", "from": "B", "to": "C"}]}`, errors.ErrCodeDuplicateMorphism},
		{"empty id", `{"objects": [{"id": ""}]}`, errors.ErrCodeInvalidDiagram},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadJSON() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestReadYAML(t *testing.T) {
	in := `
objects:
  - id: A
    label: '\mathcal{A}'
morphisms:
  - {name: f, from: A, to: B}
`
	g, err := ReadYAML(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadYAML() error: %v", err)
	}
	if g.Label("A") != `\mathcal{A}` {
		t.Errorf("Label(A) = %q", g.Label("A"))
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"d.json", FormatJSON, true},
		{"d.YAML", FormatYAML, true},
		{"dir/d.yml", FormatYAML, true},
		{"d.txt", "", false},
	}
	for _, tt := range tests {
		got, ok := FormatFromPath(tt.path)
		if got != tt.want || ok != tt.ok {
			t.Errorf("FormatFromPath(%q) = %q, %v, want %q, %v", tt.path, got, ok, tt.want, tt.ok)
		}
	}
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"d.json", "d.yaml"} {
		path := filepath.Join(dir, name)
		if err := Export(sample(), path); err != nil {
			t.Fatalf("Export(%s) error: %v", name, err)
		}
		g, err := Import(path)
		if err != nil {
			t.Fatalf("Import(%s) error: %v", name, err)
		}
		if !diagram.Equivalent(sample(), g) {
			t.Errorf("%s: round trip changed the diagram", name)
		}
	}

	if _, err := Import(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Import(missing) error = %v, want FILE_NOT_FOUND", err)
	}
	if err := Export(sample(), filepath.Join(dir, "d.txt")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Export(d.txt) error = %v, want INVALID_FORMAT", err)
	}
}
