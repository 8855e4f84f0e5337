package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinboard/pkg/cache"
	"github.com/matzehuels/pinboard/pkg/document"
	"github.com/matzehuels/pinboard/pkg/layout"
	"github.com/matzehuels/pinboard/pkg/observability"
)

// Cache key types reported to the cache hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
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

// Execute runs the complete layout → sticky → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, doc *document.Document, opts Options) (*Result, error) {
	opts.ApplyDocument(doc)
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Layout
	layoutStart := time.Now()
	res, docHash, layoutHit, err := r.layout(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.DocumentHash = docHash
	result.Layout = res
	result.Stats.Engine = opts.Engine
	result.Stats.Sections = res.NumberOfSections()
	result.Stats.Items = res.ItemCount()
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"engine", opts.Engine,
		"sections", result.Stats.Sections,
		"items", result.Stats.Items,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Sticky (optional)
	if opts.Sticky {
		result.Sticky = r.Sticky(ctx, res, opts)
		result.Stats.Pinned = CountPinned(result.Sticky)
		r.Logger.Debug("applied sticky overlay",
			"offset_y", opts.OffsetY,
			"visible", len(result.Sticky),
			"pinned", result.Stats.Pinned)
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, res, result.Sticky, doc.Name, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, doc *document.Document, opts Options) (layout.Result, bool, error) {
	opts.ApplyDocument(doc)
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Result{}, false, err
	}
	r.applyLogger(&opts)
	res, _, hit, err := r.layout(ctx, doc, opts)
	return res, hit, err
}

// GenerateLayout is a convenience wrapper that calls GenerateLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, doc *document.Document, opts Options) (layout.Result, error) {
	res, _, err := r.GenerateLayoutWithCacheInfo(ctx, doc, opts)
	return res, err
}

// layout expects validated options.
func (r *Runner) layout(ctx context.Context, doc *document.Document, opts Options) (layout.Result, string, bool, error) {
	if doc == nil {
		_, err := GenerateLayout(nil, opts)
		return layout.Result{}, "", false, err
	}
	docHash, err := HashDocument(doc)
	if err != nil {
		return layout.Result{}, "", false, err
	}
	cacheKey := r.Keyer.LayoutKey(docHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, cacheKey)
		if err != nil {
			r.Logger.Debug("layout cache read failed", "error", err)
		}
		if hit {
			var cached layout.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeLayout)
				return cached, docHash, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Engine, doc.ItemCount())
	start := time.Now()
	res, err := GenerateLayout(doc, opts)
	hooks.OnLayoutComplete(ctx, opts.Engine, time.Since(start), err)
	if err != nil {
		return layout.Result{}, "", false, err
	}

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("layout cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeLayout, len(data))
		}
	}

	return res, docHash, false, nil
}

// Sticky applies the sticky-header overlay for the viewport in opts.
// The layout itself is never modified.
func (r *Runner) Sticky(ctx context.Context, res layout.Result, opts Options) []layout.Attributes {
	start := time.Now()
	adjusted := ApplySticky(res, opts)
	observability.Pipeline().OnStickyAdjust(ctx, CountPinned(adjusted), time.Since(start))
	return adjusted
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res layout.Result, adjusted []layout.Attributes, name string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	baseHash, err := artifactBaseHash(res, name, opts)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(baseHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
				break
			}
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	// Render all formats
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(res, adjusted, name, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(baseHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, res layout.Result, adjusted []layout.Attributes, name string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, res, adjusted, name, opts)
	return artifacts, err
}

// artifactBaseHash hashes everything an artifact depends on besides the
// per-format options.
func artifactBaseHash(res layout.Result, name string, opts Options) (string, error) {
	return cache.HashJSON(struct {
		Name     string          `json:"name"`
		Layout   layout.Result   `json:"layout"`
		Viewport layout.Viewport `json:"viewport"`
		FixedTop float64         `json:"fixed_top"`
	}{name, res, opts.Viewport(), opts.FixedTopOffset})
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
