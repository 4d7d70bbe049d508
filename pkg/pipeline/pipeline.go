// Package pipeline provides the conversion pipeline shared by the CLI and the
// HTTP server.
//
// The pipeline has three independent stages:
//
//  1. Derive: diagram → minimal equations
//  2. Reconstruct: equations → diagram
//  3. Render: diagram → LaTeX, Graphviz, images, or interchange formats
//
// [Runner.Check] chains derive and reconstruct to verify the round trip, and
// [Inspect] reports the branch/merge structure of a diagram.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Derive(ctx, g, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(res.String())
//
// Every stage consults the runner's cache first; the *WithCacheInfo variants
// also report whether the result was a hit.
package pipeline

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/commute/pkg/cache"
	"github.com/matzehuels/commute/pkg/derive"
	"github.com/matzehuels/commute/pkg/errors"
	"github.com/matzehuels/commute/pkg/render"
	"github.com/matzehuels/commute/pkg/render/latex"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultMaxDepth bounds the derivation traversal.
	DefaultMaxDepth = derive.DefaultMaxDepth

	// DefaultFormat is rendered when no format is requested.
	DefaultFormat = render.FormatCodi

	// DefaultScale is the TikZ layout half-width.
	DefaultScale = latex.DefaultScale

	// DefaultPNGScale is the PNG rasterization factor.
	DefaultPNGScale = 2.0

	// DefaultSeed is the default spring layout seed.
	DefaultSeed = uint64(latex.DefaultSeed)

	// DefaultRankDir is the Graphviz layout direction.
	DefaultRankDir = "LR"
)

// ValidRankDirs is the set of supported Graphviz directions.
var ValidRankDirs = map[string]bool{
	"LR": true,
	"RL": true,
	"TB": true,
	"BT": true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Derive options
	MaxDepth int `json:"max_depth,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // classify objects in DOT output
	RankDir  string   `json:"rank_dir,omitempty"`
	Scale    float64  `json:"scale,omitempty"` // TikZ layout half-width
	PNGScale float64  `json:"png_scale,omitempty"`
	Seed     uint64   `json:"seed,omitempty"`

	// Refresh bypasses cache reads; results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	_, err := render.ParseFormat(format)
	return err
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRankDir checks that a Graphviz direction is valid.
func ValidateRankDir(dir string) error {
	if !ValidRankDirs[dir] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid rank_dir: %q (must be one of: LR, RL, TB, BT)", dir)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for all stages.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForDerive(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForDerive validates and sets defaults for derivation.
func (o *Options) ValidateForDerive() error {
	if o.MaxDepth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_depth must not be negative, got %d", o.MaxDepth)
	}
	if o.MaxDepth == 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	o.setLogger()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{string(DefaultFormat)}
	}
	if o.RankDir == "" {
		o.RankDir = DefaultRankDir
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering. Format names
// are normalized to their canonical lowercase form.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	for i, name := range o.Formats {
		f, err := render.ParseFormat(name)
		if err != nil {
			return err
		}
		o.Formats[i] = string(f)
	}
	if o.Scale < 0 || o.PNGScale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive")
	}
	// Equations embedded in a render request are derived too.
	if err := o.ValidateForDerive(); err != nil {
		return err
	}
	return ValidateRankDir(o.RankDir)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// DeriveKeyOpts returns cache key options for derivation.
func (o *Options) DeriveKeyOpts() cache.DeriveKeyOpts {
	return cache.DeriveKeyOpts{MaxDepth: o.MaxDepth}
}

// ArtifactKeyOpts returns cache key options for rendering one format. Only
// the options that affect that format take part in the key.
func (o *Options) ArtifactKeyOpts(format render.Format) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: string(format)}
	switch format {
	case render.FormatTikZ:
		k.Scale, k.Seed = o.Scale, o.Seed
	case render.FormatDOT, render.FormatSVG, render.FormatPDF:
		k.Detailed = o.Detailed
		k.Format += ":" + o.RankDir
	case render.FormatPNG:
		k.Detailed, k.Scale = o.Detailed, o.PNGScale
		k.Format += ":" + o.RankDir
	case render.FormatEquations:
		k.Format += fmt.Sprintf(":%d", o.MaxDepth)
	}
	return k
}
