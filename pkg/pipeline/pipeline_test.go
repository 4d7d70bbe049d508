package pipeline

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/commute/internal/corpus"
	"github.com/matzehuels/commute/pkg/cache"
	"github.com/matzehuels/commute/pkg/errors"
	"github.com/matzehuels/commute/pkg/render"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"codi", false},
		{"tikz", false},
		{"svg", false},
		{"equations", false},
		{"TikZ", false}, // case-insensitive
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Invalid format error = %v, want INVALID_FORMAT", err)
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateRankDir(t *testing.T) {
	for _, dir := range []string{"LR", "RL", "TB", "BT"} {
		if err := ValidateRankDir(dir); err != nil {
			t.Errorf("ValidateRankDir(%q) error = %v", dir, err)
		}
	}
	for _, dir := range []string{"", "lr", "XY"} {
		if err := ValidateRankDir(dir); err == nil {
			t.Errorf("ValidateRankDir(%q) should fail", dir)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Formats: []string{"TIKZ"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if opts.MaxDepth != DefaultMaxDepth {
		t.Errorf("MaxDepth = %d, want %d", opts.MaxDepth, DefaultMaxDepth)
	}
	if opts.RankDir != DefaultRankDir || opts.Scale != DefaultScale || opts.Seed != DefaultSeed {
		t.Errorf("render defaults not applied: %+v", opts)
	}
	if opts.Formats[0] != "tikz" {
		t.Errorf("Formats = %v, want [tikz]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}
	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second ValidateAndSetDefaults() error: %v", err)
	}

	empty := Options{}
	if err := empty.ValidateForRender(); err != nil {
		t.Fatalf("ValidateForRender() error: %v", err)
	}
	if !slices.Equal(empty.Formats, []string{string(DefaultFormat)}) {
		t.Errorf("Formats = %v, want [%s]", empty.Formats, DefaultFormat)
	}

	bad := Options{MaxDepth: -1}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative MaxDepth error = %v, want INVALID_INPUT", err)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	a := Options{Scale: 4, Seed: 1, RankDir: "LR"}
	b := Options{Scale: 4, Seed: 2, RankDir: "LR"}

	if a.ArtifactKeyOpts(render.FormatTikZ) == b.ArtifactKeyOpts(render.FormatTikZ) {
		t.Error("tikz keys should depend on the seed")
	}
	if a.ArtifactKeyOpts(render.FormatCodi) != b.ArtifactKeyOpts(render.FormatCodi) {
		t.Error("codi keys should not depend on the seed")
	}
	b.RankDir = "TB"
	if a.ArtifactKeyOpts(render.FormatDOT) == b.ArtifactKeyOpts(render.FormatDOT) {
		t.Error("dot keys should depend on the rank direction")
	}
}

func newFileRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	r := NewRunner(c, nil, nil)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestRunnerDeriveCaches(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	g := corpus.Graph("bridge")

	first, hit, err := r.DeriveWithCacheInfo(ctx, g, Options{})
	if err != nil {
		t.Fatalf("DeriveWithCacheInfo() error: %v", err)
	}
	if hit {
		t.Error("first derivation should miss the cache")
	}

	second, hit, err := r.DeriveWithCacheInfo(ctx, g, Options{})
	if err != nil {
		t.Fatalf("DeriveWithCacheInfo() error: %v", err)
	}
	if !hit {
		t.Error("second derivation should hit the cache")
	}
	if second.String() != first.String() || second.Pairs != first.Pairs {
		t.Errorf("cached result = %q, want %q", second.String(), first.String())
	}

	if _, hit, _ := r.DeriveWithCacheInfo(ctx, g, Options{Refresh: true}); hit {
		t.Error("Refresh should bypass the cache")
	}
	if _, hit, _ := r.DeriveWithCacheInfo(ctx, g, Options{MaxDepth: 100}); hit {
		t.Error("different MaxDepth should use a different key")
	}
}

func TestRunnerReconstructCaches(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	text := "{i}{h}{g}{f} = {n}{m}{l}\n{h}{g} = {k}{j}\n"

	first, hit, err := r.ReconstructWithCacheInfo(ctx, text, Options{})
	if err != nil || hit {
		t.Fatalf("ReconstructWithCacheInfo() = hit %v, err %v", hit, err)
	}
	second, hit, err := r.ReconstructWithCacheInfo(ctx, text, Options{})
	if err != nil || !hit {
		t.Fatalf("ReconstructWithCacheInfo() = hit %v, err %v, want hit", hit, err)
	}
	if second.Stats != first.Stats {
		t.Errorf("cached Stats = %+v, want %+v", second.Stats, first.Stats)
	}
	if second.Graph.ObjectCount() != 8 || second.Graph.MorphismCount() != 9 {
		t.Errorf("cached graph = %d objects, %d morphisms", second.Graph.ObjectCount(), second.Graph.MorphismCount())
	}
}

func TestRunnerReconstructErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Reconstruct(context.Background(), "{f}\n{f} = {g}{f}\n", Options{})
	if !errors.Is(err, errors.ErrCodeDuplicateMorphism) {
		t.Fatalf("Reconstruct() error = %v, want DUPLICATE_MORPHISM", err)
	}
	if line, _, ok := errors.Position(err); !ok || line != 2 {
		t.Errorf("error line = %d (%v), want 2", line, ok)
	}
}

func TestRunnerRenderText(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	g := corpus.Graph("triangle")
	opts := Options{Formats: []string{"codi", "dot", "json", "diagram", "equations"}}

	out, hit, err := r.RenderWithCacheInfo(ctx, g, opts)
	if err != nil {
		t.Fatalf("RenderWithCacheInfo() error: %v", err)
	}
	if hit {
		t.Error("first render should miss the cache")
	}
	checks := map[string]string{
		"codi":      `\mor A f:-> B;`,
		"dot":       `"A" -> "B" [label="f"]`,
		"json":      `"morphisms"`,
		"diagram":   "{f}{A}{B}",
		"equations": "{g}{f} = {h}",
	}
	for format, want := range checks {
		if !strings.Contains(string(out[format]), want) {
			t.Errorf("%s output missing %q:\n%s", format, want, out[format])
		}
	}

	again, hit, err := r.RenderWithCacheInfo(ctx, g, opts)
	if err != nil {
		t.Fatalf("RenderWithCacheInfo() error: %v", err)
	}
	if !hit {
		t.Error("second render should hit the cache")
	}
	if string(again["codi"]) != string(out["codi"]) {
		t.Error("cached codi output differs")
	}
}

func TestRunnerRenderInvalidFormat(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Render(context.Background(), corpus.Graph("triangle"), Options{Formats: []string{"gif"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Render() error = %v, want INVALID_FORMAT", err)
	}
}

func TestCheckCorpus(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	for _, entry := range corpus.All() {
		t.Run(entry.Name, func(t *testing.T) {
			report, err := r.Check(ctx, entry.Graph(), Options{})
			if err != nil {
				t.Fatalf("Check() error: %v", err)
			}
			if !report.OK() {
				t.Errorf("Check() = %+v, want a faithful round trip", report)
			}
		})
	}
}

func TestInspect(t *testing.T) {
	in := Inspect(corpus.Graph("bridge"))
	if in.CycleRank != 2 || len(in.CycleBasis) != 2 {
		t.Errorf("CycleRank = %d, basis %v, want 2 cycles", in.CycleRank, in.CycleBasis)
	}
	if in.Components != 1 {
		t.Errorf("Components = %d, want 1", in.Components)
	}
	if len(in.Objects) != 8 || in.Objects[0].Kind != "branch" {
		t.Errorf("Objects = %+v", in.Objects)
	}
	if in.Skeleton == nil || in.Skeleton.Graph.ObjectCount() != 2 {
		t.Errorf("Skeleton = %+v, want 2 objects", in.Skeleton)
	}
	if len(in.BackEdges) != 0 {
		t.Errorf("BackEdges = %v, want none", in.BackEdges)
	}
}
