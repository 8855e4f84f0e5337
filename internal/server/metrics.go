package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/pinboard/pkg/observability"
)

// Metrics exports pipeline, cache and HTTP events as Prometheus series. It
// implements all three observability hook interfaces.
type Metrics struct {
	registry *prometheus.Registry

	layouts        *prometheus.CounterVec
	layoutDuration *prometheus.HistogramVec
	layoutItems    *prometheus.HistogramVec
	stickyPinned   prometheus.Histogram
	renders        *prometheus.CounterVec
	renderDuration prometheus.Histogram
	cacheEvents    *prometheus.CounterVec
	cacheBytes     *prometheus.CounterVec
	requests       *prometheus.CounterVec
	inflight       prometheus.Gauge
	requestLatency *prometheus.HistogramVec
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
	_ observability.HTTPHooks     = (*Metrics)(nil)
)

// NewMetrics creates the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		layouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pinboard_layouts_total",
			Help: "Layout passes by engine and outcome.",
		}, []string{"engine", "outcome"}),
		layoutDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pinboard_layout_duration_seconds",
			Help:    "Duration of layout passes.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"engine"}),
		layoutItems: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pinboard_layout_items",
			Help:    "Items per layout pass.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 9),
		}, []string{"engine"}),
		stickyPinned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pinboard_sticky_pinned_headers",
			Help:    "Sticky headers raised per overlay pass.",
			Buckets: []float64{0, 1, 2, 4, 8, 16},
		}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pinboard_renders_total",
			Help: "Render passes by outcome.",
		}, []string{"outcome"}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pinboard_render_duration_seconds",
			Help:    "Duration of render passes.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pinboard_cache_events_total",
			Help: "Cache lookups and writes by key type.",
		}, []string{"type", "event"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pinboard_cache_written_bytes_total",
			Help: "Bytes written to the cache by key type.",
		}, []string{"type"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pinboard_http_requests_total",
			Help: "HTTP responses by route and status.",
		}, []string{"method", "route", "status"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pinboard_http_inflight_requests",
			Help: "Requests currently being served.",
		}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pinboard_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	m.registry.MustRegister(
		m.layouts, m.layoutDuration, m.layoutItems, m.stickyPinned,
		m.renders, m.renderDuration,
		m.cacheEvents, m.cacheBytes,
		m.requests, m.inflight, m.requestLatency,
	)
	return m
}

// Register installs m as the process-wide observability hooks.
func (m *Metrics) Register() {
	observability.Register(m)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) OnLayoutStart(_ context.Context, engine string, items int) {
	m.layoutItems.WithLabelValues(engine).Observe(float64(items))
}

func (m *Metrics) OnLayoutComplete(_ context.Context, engine string, d time.Duration, err error) {
	m.layouts.WithLabelValues(engine, outcome(err)).Inc()
	m.layoutDuration.WithLabelValues(engine).Observe(d.Seconds())
}

func (m *Metrics) OnStickyAdjust(_ context.Context, pinned int, _ time.Duration) {
	m.stickyPinned.Observe(float64(pinned))
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	m.renders.WithLabelValues(outcome(err)).Inc()
	m.renderDuration.Observe(d.Seconds())
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheEvents.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (m *Metrics) OnRequest(context.Context, string, string) {
	m.inflight.Inc()
}

func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.inflight.Dec()
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
