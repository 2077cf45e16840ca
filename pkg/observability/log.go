package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. It implements
// [SearchHooks], [CacheHooks] and [HTTPHooks].
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks logging to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("hook")}
}

func (h *LogHooks) OnLoadComplete(_ context.Context, instance string, vertices, edges int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "instance", instance, "error", err)
		return
	}
	h.logger.Debug("loaded", "instance", instance, "vertices", vertices, "edges", edges, "took", d)
}

func (h *LogHooks) OnSearchStart(_ context.Context, instance string, vertices int) {
	h.logger.Debug("search start", "instance", instance, "vertices", vertices)
}

func (h *LogHooks) OnImprove(_ context.Context, instance string, restart, size int) {
	h.logger.Debug("improved", "instance", instance, "restart", restart, "size", size)
}

func (h *LogHooks) OnSearchComplete(_ context.Context, instance string, size int, d time.Duration, err error) {
	h.logger.Debug("search done", "instance", instance, "size", size, "took", d, "error", err)
}

func (h *LogHooks) OnVerifyFailed(_ context.Context, instance, reason string) {
	h.logger.Debug("verify failed", "instance", instance, "reason", reason)
}

func (h *LogHooks) OnCacheHit(_ context.Context, kind string) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, kind string) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h *LogHooks) OnCacheSet(_ context.Context, kind string, bytes int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", bytes)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "route", route, "status", status, "took", d)
}

var (
	_ SearchHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
	_ HTTPHooks   = (*LogHooks)(nil)
)
