package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogPipelineHooks logs pipeline events at debug level, and failures at
// error level.
type LogPipelineHooks struct {
	Logger *log.Logger
}

func (h LogPipelineHooks) OnDeriveStart(_ context.Context, morphisms int) {
	h.Logger.Debug("deriving equations", "morphisms", morphisms)
}

func (h LogPipelineHooks) OnDeriveComplete(_ context.Context, lines int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Error("derivation failed", "error", err, "duration", d)
		return
	}
	h.Logger.Debug("derived equations", "lines", lines, "duration", d)
}

func (h LogPipelineHooks) OnReconstructStart(_ context.Context, lines int) {
	h.Logger.Debug("reconstructing diagram", "lines", lines)
}

func (h LogPipelineHooks) OnReconstructComplete(_ context.Context, objects, morphisms int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Error("reconstruction failed", "error", err, "duration", d)
		return
	}
	h.Logger.Debug("reconstructed diagram", "objects", objects, "morphisms", morphisms, "duration", d)
}

func (h LogPipelineHooks) OnRenderStart(_ context.Context, format string) {
	h.Logger.Debug("rendering", "format", format)
}

func (h LogPipelineHooks) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Error("render failed", "format", format, "error", err)
		return
	}
	h.Logger.Debug("rendered", "format", format, "duration", d)
}

// LogCacheHooks logs cache traffic at debug level.
type LogCacheHooks struct {
	Logger *log.Logger
}

func (h LogCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "kind", keyType)
}

func (h LogCacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "kind", keyType)
}

func (h LogCacheHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "kind", keyType, "bytes", size)
}

var (
	_ PipelineHooks = LogPipelineHooks{}
	_ CacheHooks    = LogCacheHooks{}
)
