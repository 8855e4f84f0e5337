// Package observability lets a host receive events from the layout pipeline,
// the caches and the HTTP service without those packages importing a metrics
// library.
//
// Events are grouped into three interfaces: [PipelineHooks] for layout,
// sticky and render passes, [CacheHooks] for cache lookups and writes, and
// [HTTPHooks] for served requests. Until something is registered every call
// lands on a no-op implementation.
//
// A host registers once at startup, typically with a single value that
// implements several of the interfaces:
//
//	m := server.NewMetrics()
//	observability.Register(m) // binds every hook interface m implements
//
// Emitters look the current hooks up on each event:
//
//	start := time.Now()
//	observability.Pipeline().OnLayoutStart(ctx, engine, items)
//	res, err := run()
//	observability.Pipeline().OnLayoutComplete(ctx, engine, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the layout pipeline.
type PipelineHooks interface {
	OnLayoutStart(ctx context.Context, engine string, items int)
	OnLayoutComplete(ctx context.Context, engine string, duration time.Duration, err error)

	// OnStickyAdjust records one sticky overlay pass and how many headers
	// it pinned.
	OnStickyAdjust(ctx context.Context, pinned int, duration time.Duration)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache events. keyType is "layout" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the layout service. route is the router
// pattern, not the raw path, so label cardinality stays bounded.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// NoopPipelineHooks discards pipeline events.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                       {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, time.Duration, error)   {}
func (NoopPipelineHooks) OnStickyAdjust(context.Context, int, time.Duration)               {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks discards cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks discards HTTP events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

type registry struct {
	mu       sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var hooks = &registry{
	pipeline: NoopPipelineHooks{},
	cache:    NoopCacheHooks{},
	http:     NoopHTTPHooks{},
}

// Register binds h to every hook interface it implements and reports how
// many it bound. It is meant to be called once at startup.
func Register(h any) int {
	hooks.mu.Lock()
	defer hooks.mu.Unlock()

	n := 0
	if p, ok := h.(PipelineHooks); ok && p != nil {
		hooks.pipeline = p
		n++
	}
	if c, ok := h.(CacheHooks); ok && c != nil {
		hooks.cache = c
		n++
	}
	if x, ok := h.(HTTPHooks); ok && x != nil {
		hooks.http = x
		n++
	}
	return n
}

// SetPipelineHooks replaces the pipeline hooks. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		hooks.mu.Lock()
		hooks.pipeline = h
		hooks.mu.Unlock()
	}
}

// SetCacheHooks replaces the cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		hooks.mu.Lock()
		hooks.cache = h
		hooks.mu.Unlock()
	}
}

// SetHTTPHooks replaces the HTTP hooks. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		hooks.mu.Lock()
		hooks.http = h
		hooks.mu.Unlock()
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.pipeline
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.cache
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.http
}

// Reset restores the no-op hooks. Tests that register hooks call it on
// cleanup.
func Reset() {
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	hooks.pipeline = NoopPipelineHooks{}
	hooks.cache = NoopCacheHooks{}
	hooks.http = NoopHTTPHooks{}
}
