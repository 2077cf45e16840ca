// Package observability carries optional instrumentation hooks.
//
// The graph loader, the pipeline and the HTTP service report events to the
// hooks returned by [Search], [Cache] and [HTTP]. Until something is
// registered those are no-ops. The CLI registers [LogHooks] when --verbose
// is given:
//
//	h := observability.NewLogHooks(logger)
//	observability.Register(observability.Hooks{Search: h, Cache: h, HTTP: h})
//
// A metrics exporter would implement the same interfaces.
package observability

import (
	"context"
	"sync"
	"time"
)

// SearchHooks observes graph loading and clique search.
type SearchHooks interface {
	OnLoadComplete(ctx context.Context, instance string, vertices, edges int, d time.Duration, err error)
	OnSearchStart(ctx context.Context, instance string, vertices int)
	// OnImprove fires when a restart finds a clique larger than any before it.
	OnImprove(ctx context.Context, instance string, restart, size int)
	OnSearchComplete(ctx context.Context, instance string, size int, d time.Duration, err error)
	// OnVerifyFailed fires when the returned vertex set is not a clique.
	OnVerifyFailed(ctx context.Context, instance, reason string)
}

// CacheHooks observes result and artifact cache traffic. kind is "result"
// or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	OnCacheSet(ctx context.Context, kind string, bytes int)
}

// HTTPHooks observes requests to the HTTP service. route is the chi route
// pattern once it is known and the raw path before.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, status int, d time.Duration)
}

// Hooks is a set of implementations to [Register]. Nil fields leave the
// current registration in place.
type Hooks struct {
	Search SearchHooks
	Cache  CacheHooks
	HTTP   HTTPHooks
}

type noop struct{}

func (noop) OnLoadComplete(context.Context, string, int, int, time.Duration, error) {}
func (noop) OnSearchStart(context.Context, string, int)                             {}
func (noop) OnImprove(context.Context, string, int, int)                            {}
func (noop) OnSearchComplete(context.Context, string, int, time.Duration, error)    {}
func (noop) OnVerifyFailed(context.Context, string, string)                         {}
func (noop) OnCacheHit(context.Context, string)                                     {}
func (noop) OnCacheMiss(context.Context, string)                                    {}
func (noop) OnCacheSet(context.Context, string, int)                                {}
func (noop) OnRequest(context.Context, string, string)                              {}
func (noop) OnResponse(context.Context, string, string, int, time.Duration)         {}

// Noop implements every hook interface and does nothing.
var Noop = Hooks{Search: noop{}, Cache: noop{}, HTTP: noop{}}

var (
	mu      sync.RWMutex
	current = Noop
)

// Register installs the non-nil fields of h.
func Register(h Hooks) {
	mu.Lock()
	defer mu.Unlock()
	if h.Search != nil {
		current.Search = h.Search
	}
	if h.Cache != nil {
		current.Cache = h.Cache
	}
	if h.HTTP != nil {
		current.HTTP = h.HTTP
	}
}

// Reset reinstalls [Noop].
func Reset() {
	mu.Lock()
	current = Noop
	mu.Unlock()
}

func registered() Hooks {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Search, Cache and HTTP return the registered hooks.
func Search() SearchHooks { return registered().Search }
func Cache() CacheHooks   { return registered().Cache }
func HTTP() HTTPHooks     { return registered().HTTP }
