package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/commute/internal/corpus"
	"github.com/matzehuels/commute/pkg/diagram"
	"github.com/matzehuels/commute/pkg/dsl"
	"github.com/matzehuels/commute/pkg/errors"
	pkgio "github.com/matzehuels/commute/pkg/io"
)

// stdinName is the file argument that selects standard input.
const stdinName = "-"

// corpusPrefix selects a built-in reference diagram, e.g. "corpus:bridge".
const corpusPrefix = "corpus:"

// readInput returns the contents of path, or of stdin when path is empty
// or "-".
func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" || path == stdinName {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// loadDiagram reads a diagram from path. JSON and YAML files are decoded as
// interchange documents, "corpus:<name>" names a reference diagram, and
// everything else is parsed as diagram text.
func loadDiagram(path string, stdin io.Reader) (*diagram.Graph, error) {
	if name, ok := strings.CutPrefix(path, corpusPrefix); ok {
		entry, found := corpus.Lookup(name)
		if !found {
			return nil, errors.New(errors.ErrCodeNotFound, "no corpus diagram named %q (see: commute sample)", name)
		}
		return entry.Graph(), nil
	}
	if _, ok := pkgio.FormatFromPath(path); ok {
		return pkgio.Import(path)
	}
	text, err := readInput(path, stdin)
	if err != nil {
		return nil, err
	}
	g, err := dsl.ParseDiagram(text)
	if err != nil {
		return nil, withFile(err, path)
	}
	return g, nil
}

// withFile prefixes err with the input name so positions read file:line.
func withFile(err error, path string) error {
	if path == "" || path == stdinName {
		path = "<stdin>"
	}
	return fmt.Errorf("%s: %w", path, err)
}

// writeOutput writes data to path, or to w when path is empty or "-".
func writeOutput(path string, data []byte, w io.Writer) error {
	if path == "" || path == stdinName {
		_, err := w.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// basePath derives the base output path from the output and input paths.
// An empty output strips the extension from input; otherwise the extension
// of output is dropped.
func basePath(output, input string) string {
	if output == "" {
		switch {
		case input == "" || input == stdinName:
			return "diagram"
		case strings.HasPrefix(input, corpusPrefix):
			return strings.TrimPrefix(input, corpusPrefix)
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	return strings.TrimSuffix(output, filepath.Ext(output))
}
