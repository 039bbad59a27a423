package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// Cache key kinds passed to [CacheHooks].
const (
	KeyPlan     = "plan"
	KeyArtifact = "artifact"
)

// LogHooks reports every pipeline, cache and HTTP event as a debug line. It
// backs --verbose, where the timing of each stage is the useful signal.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to l, prefixed with "hook".
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l.WithPrefix("hook")}
}

// UseLogger registers [LogHooks] on l for all event categories.
func UseLogger(l *log.Logger) {
	h := NewLogHooks(l)
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnWiringStart(_ context.Context, panels int) {
	h.logger.Debug("wiring start", "panels", panels)
}

func (h *LogHooks) OnWiringComplete(_ context.Context, ports int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("wiring failed", "duration", d, "error", err)
		return
	}
	h.logger.Debug("wiring done", "ports", ports, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, view string, formats []string) {
	h.logger.Debug("render start", "view", view, "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, view string, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "view", view, "duration", d, "error", err)
		return
	}
	h.logger.Debug("render done", "view", view, "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "kind", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "kind", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "kind", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request start", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("request done", "method", method, "route", route, "status", status, "duration", d)
}
