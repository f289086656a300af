package server

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/obst/pkg/observability"
)

// LogHooks writes pipeline, cache and request events to a logger.
type LogHooks struct {
	Logger *log.Logger
}

var (
	_ observability.PipelineHooks = LogHooks{}
	_ observability.CacheHooks    = LogHooks{}
	_ observability.ServerHooks   = LogHooks{}
)

// InstallHooks registers LogHooks for every hook category.
func InstallHooks(logger *log.Logger) {
	h := LogHooks{Logger: logger}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetServerHooks(h)
}

func (h LogHooks) with(ctx context.Context) *log.Logger {
	if id := RequestID(ctx); id != "" {
		return h.Logger.With("request_id", id)
	}
	return h.Logger
}

func (h LogHooks) OnBuildStart(ctx context.Context, entries int) {
	h.with(ctx).Debug("build started", "entries", entries)
}

func (h LogHooks) OnBuildComplete(ctx context.Context, entries int, totalCost float64, d time.Duration, err error) {
	if err != nil {
		h.with(ctx).Warn("build failed", "entries", entries, "error", err)
		return
	}
	h.with(ctx).Debug("build complete", "entries", entries, "cost", totalCost, "duration", d)
}

func (h LogHooks) OnLayoutStart(ctx context.Context, vizType string, nodeCount int) {
	h.with(ctx).Debug("layout started", "viz_type", vizType, "nodes", nodeCount)
}

func (h LogHooks) OnLayoutComplete(ctx context.Context, vizType string, d time.Duration, err error) {
	if err != nil {
		h.with(ctx).Warn("layout failed", "viz_type", vizType, "error", err)
		return
	}
	h.with(ctx).Debug("layout complete", "viz_type", vizType, "duration", d)
}

func (h LogHooks) OnRenderStart(ctx context.Context, formats []string) {
	h.with(ctx).Debug("render started", "formats", formats)
}

func (h LogHooks) OnRenderComplete(ctx context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.with(ctx).Warn("render failed", "formats", formats, "error", err)
		return
	}
	h.with(ctx).Debug("render complete", "formats", formats, "duration", d)
}

func (h LogHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.with(ctx).Debug("cache hit", "type", keyType)
}

func (h LogHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.with(ctx).Debug("cache miss", "type", keyType)
}

func (h LogHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	h.with(ctx).Debug("cache set", "type", keyType, "bytes", size)
}

func (h LogHooks) OnRequest(ctx context.Context, method, path string) {
	h.with(ctx).Debug("request", "method", method, "path", path)
}

func (h LogHooks) OnResponse(ctx context.Context, method, route string, status int, d time.Duration) {
	logger := h.with(ctx)
	if status >= 500 {
		logger.Error("response", "method", method, "route", route, "status", status, "duration", d)
		return
	}
	logger.Info("response", "method", method, "route", route, "status", status, "duration", d)
}
