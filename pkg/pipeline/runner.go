package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/commute/pkg/cache"
	"github.com/matzehuels/commute/pkg/derive"
	"github.com/matzehuels/commute/pkg/diagram"
	"github.com/matzehuels/commute/pkg/dsl"
	pkgio "github.com/matzehuels/commute/pkg/io"
	"github.com/matzehuels/commute/pkg/observability"
	"github.com/matzehuels/commute/pkg/reconstruct"
	"github.com/matzehuels/commute/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Reconstruction is the result of rebuilding a diagram from equations.
type Reconstruction struct {
	Graph *diagram.Graph
	Stats reconstruct.Stats
}

// cachedReconstruction is the cached form of a Reconstruction.
type cachedReconstruction struct {
	Diagram pkgio.Document    `json:"diagram"`
	Stats   reconstruct.Stats `json:"stats"`
}

// Report is the outcome of a round-trip check.
type Report struct {
	// Equations are the lines derived from the input diagram.
	Equations []string `json:"equations"`

	// Rebuilt is the diagram reconstructed from Equations.
	Rebuilt *diagram.Graph `json:"-"`

	// Equivalent reports a name-preserving match between input and rebuilt
	// diagram; Isomorphic reports a structural match ignoring names.
	Equivalent bool `json:"equivalent"`
	Isomorphic bool `json:"isomorphic"`

	Stats reconstruct.Stats `json:"stats"`
}

// OK reports whether the round trip reproduced the input.
func (r *Report) OK() bool { return r.Equivalent && r.Isomorphic }

// diagramHash is the content hash used in cache keys for g.
func diagramHash(g *diagram.Graph) string {
	return cache.HashString(dsl.SerializeDiagram(g))
}

// DeriveWithCacheInfo derives equations with caching and returns cache hit info.
func (r *Runner) DeriveWithCacheInfo(ctx context.Context, g *diagram.Graph, opts Options) (*derive.Result, bool, error) {
	if err := opts.ValidateForDerive(); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.DeriveKey(diagramHash(g), opts.DeriveKeyOpts())
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var res derive.Result
			if err := json.Unmarshal(data, &res); err == nil {
				observability.Cache().OnCacheHit(ctx, "derive")
				return &res, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "derive")
	}

	hooks := observability.Pipeline()
	hooks.OnDeriveStart(ctx, g.MorphismCount())
	start := time.Now()
	res, err := derive.Equations(g, derive.Options{MaxDepth: opts.MaxDepth})
	if err != nil {
		hooks.OnDeriveComplete(ctx, 0, time.Since(start), err)
		return nil, false, err
	}
	hooks.OnDeriveComplete(ctx, len(res.Equations), time.Since(start), nil)

	r.Logger.Info("derived equations",
		"morphisms", g.MorphismCount(),
		"lines", len(res.Equations),
		"duration", time.Since(start))

	if data, err := json.Marshal(res); err == nil {
		r.store(ctx, "derive", cacheKey, data, cache.TTLDerive)
	}
	return res, false, nil
}

// Derive is a convenience wrapper that calls DeriveWithCacheInfo and discards the cache hit info.
func (r *Runner) Derive(ctx context.Context, g *diagram.Graph, opts Options) (*derive.Result, error) {
	res, _, err := r.DeriveWithCacheInfo(ctx, g, opts)
	return res, err
}

// ReconstructWithCacheInfo rebuilds a diagram from equation text with
// caching and returns cache hit info.
func (r *Runner) ReconstructWithCacheInfo(ctx context.Context, text string, opts Options) (*Reconstruction, bool, error) {
	opts.setLogger()

	cacheKey := r.Keyer.ReconstructKey(cache.HashString(text))
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached cachedReconstruction
			if err := json.Unmarshal(data, &cached); err == nil {
				if g, err := cached.Diagram.Graph(); err == nil {
					observability.Cache().OnCacheHit(ctx, "reconstruct")
					return &Reconstruction{Graph: g, Stats: cached.Stats}, true, nil
				}
			}
		}
		observability.Cache().OnCacheMiss(ctx, "reconstruct")
	}

	lines, err := dsl.ParseEquations(text)
	if err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnReconstructStart(ctx, len(lines))
	start := time.Now()
	b := reconstruct.NewBuilder()
	if err := b.AddLines(lines); err != nil {
		hooks.OnReconstructComplete(ctx, 0, 0, time.Since(start), err)
		return nil, false, err
	}
	rec := &Reconstruction{Graph: b.Graph(), Stats: b.Stats()}
	hooks.OnReconstructComplete(ctx, rec.Stats.Objects, rec.Stats.Morphisms, time.Since(start), nil)

	r.Logger.Info("reconstructed diagram",
		"lines", rec.Stats.Lines,
		"objects", rec.Stats.Objects,
		"morphisms", rec.Stats.Morphisms,
		"duration", time.Since(start))

	data, err := json.Marshal(cachedReconstruction{Diagram: pkgio.FromGraph(rec.Graph), Stats: rec.Stats})
	if err == nil {
		r.store(ctx, "reconstruct", cacheKey, data, cache.TTLReconstruct)
	}
	return rec, false, nil
}

// Reconstruct is a convenience wrapper that calls ReconstructWithCacheInfo and discards the cache hit info.
func (r *Runner) Reconstruct(ctx context.Context, text string, opts Options) (*Reconstruction, error) {
	rec, _, err := r.ReconstructWithCacheInfo(ctx, text, opts)
	return rec, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. The hit flag is true only when every format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *diagram.Graph, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hash := diagramHash(g)
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, name := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(render.Format(name)))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[name] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		missing = append(missing, name)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	sub := opts
	sub.Formats = missing
	for _, name := range missing {
		hooks.OnRenderStart(ctx, name)
	}
	start := time.Now()
	rendered, err := Render(ctx, g, sub)
	for _, name := range missing {
		hooks.OnRenderComplete(ctx, name, time.Since(start), err)
	}
	if err != nil {
		return nil, false, err
	}

	r.Logger.Info("rendered outputs",
		"formats", missing,
		"duration", time.Since(start))

	for name, data := range rendered {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(render.Format(name)))
		r.store(ctx, "artifact", key, data, cache.TTLArtifact)
		artifacts[name] = data
	}
	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g *diagram.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, opts)
	return artifacts, err
}

// Check derives the equations of g, rebuilds a diagram from them, and
// compares the result with g.
func (r *Runner) Check(ctx context.Context, g *diagram.Graph, opts Options) (*Report, error) {
	res, err := r.Derive(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("derive: %w", err)
	}
	rec, err := r.Reconstruct(ctx, res.String(), opts)
	if err != nil {
		return nil, fmt.Errorf("reconstruct: %w", err)
	}

	report := &Report{
		Equations:  res.Lines(),
		Rebuilt:    rec.Graph,
		Equivalent: diagram.Equivalent(g, rec.Graph),
		Isomorphic: diagram.Isomorphic(g, rec.Graph),
		Stats:      rec.Stats,
	}
	if !report.OK() {
		r.Logger.Warn("round trip mismatch",
			"equivalent", report.Equivalent,
			"isomorphic", report.Isomorphic)
	}
	return report, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) store(ctx context.Context, kind, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "kind", kind, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}
