package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/pinboard/pkg/cache"
	"github.com/matzehuels/pinboard/pkg/layout/sticky"
	"github.com/matzehuels/pinboard/pkg/observability"
	"github.com/matzehuels/pinboard/pkg/pipeline"
)

// boardJSON lays out as: header (0,0,200,40), item 0 (0,40,100,100),
// item 1 (100,40,100,50), item 2 (100,90,100,60).
const boardJSON = `{
	"name": "board",
	"viewport": {"width": 200, "height": 100},
	"sections": [{
		"columns": 2,
		"sticky": true,
		"header": {"width": 200, "height": 40},
		"heights": [100, 50, 60]
	}]
}`

func newTestServer(t *testing.T) (*Server, *Metrics) {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	runner := pipeline.NewRunner(fc, nil, log.New(io.Discard))
	t.Cleanup(func() { runner.Close() })

	m := NewMetrics()
	m.Register()
	t.Cleanup(observability.Reset)
	return New(runner, WithMetrics(m), WithLogger(log.New(io.Discard))), m
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.NotEmpty(t, resp["version"])
}

func TestRequestID(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	_, err := uuid.Parse(rr.Header().Get(RequestIDHeader))
	assert.NoError(t, err, "generated request id should be a uuid")

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, id, rr.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.NotEqual(t, "not-a-uuid", rr.Header().Get(RequestIDHeader))
}

func TestLayout(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()
	body := `{"document":` + boardJSON + `,"options":{"formats":["svg"]}}`

	rr := post(t, h, "/v1/layout", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp LayoutResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, rr.Header().Get(RequestIDHeader), resp.RequestID)
	assert.NotEmpty(t, resp.DocumentHash)
	assert.False(t, resp.CacheInfo.LayoutHit)
	assert.Contains(t, resp.SVG, "<svg")

	var table struct {
		Engine string  `json:"engine"`
		Height float64 `json:"height"`
	}
	require.NoError(t, json.Unmarshal(resp.Layout, &table))
	assert.Equal(t, "waterfall", table.Engine)
	assert.Equal(t, 150.0, table.Height)

	rr = post(t, h, "/v1/layout", body)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.CacheInfo.LayoutHit, "second request should hit the layout cache")
	assert.True(t, resp.CacheInfo.RenderHit, "second request should hit the artifact cache")
}

func TestLayoutErrors(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	tests := []struct {
		name string
		body string
		code string
	}{
		{"malformed body", `{`, "INVALID_INPUT"},
		{"unknown field", `{"document":` + boardJSON + `,"extra":1}`, "INVALID_INPUT"},
		{"missing document", `{}`, "INVALID_DOCUMENT"},
		{"negative columns", `{"document":{"viewport":{"width":200},"sections":[{"columns":-1}]}}`, "INVALID_DOCUMENT"},
		{"unknown engine", `{"document":{"engine":"grid","viewport":{"width":200}}}`, "INVALID_ENGINE"},
		{"bad format", `{"document":` + boardJSON + `,"options":{"formats":["png"]}}`, "INVALID_FORMAT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := post(t, h, "/v1/layout", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			var resp errorBody
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestSticky(t *testing.T) {
	s, _ := newTestServer(t)
	body := `{"document":` + boardJSON + `,"options":{"offset_y":60}}`

	rr := post(t, s.Handler(), "/v1/sticky", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp StickyResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 150.0, resp.ContentHeight)
	require.Len(t, resp.Entries, 4)

	header := resp.Entries[len(resp.Entries)-1]
	assert.True(t, header.IsHeader(), "injected header comes after the cells")
	assert.Equal(t, 60.0, header.Frame.Y)
	assert.Equal(t, sticky.ZIndex, header.ZIndex)
}

func TestStickyRect(t *testing.T) {
	s, _ := newTestServer(t)
	body := `{"document":` + boardJSON + `,
		"options":{"offset_y":0},
		"rect":{"x":0,"y":140,"width":200,"height":20}}`

	rr := post(t, s.Handler(), "/v1/sticky", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp StickyResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	// Only item 2 (y 90..150) intersects; its header is injected unmoved.
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, 2, resp.Entries[0].Item)
	assert.Equal(t, 0.0, resp.Entries[1].Frame.Y)
}

func TestMetrics(t *testing.T) {
	s, m := newTestServer(t)
	h := s.Handler()
	post(t, h, "/v1/layout", `{"document":`+boardJSON+`}`)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	out := rr.Body.String()
	assert.Contains(t, out, `pinboard_layouts_total{engine="waterfall",outcome="ok"} 1`)
	assert.Contains(t, out, `pinboard_http_requests_total{method="POST",route="/v1/layout",status="200"} 1`)
	assert.Contains(t, out, `pinboard_cache_events_total{event="miss",type="layout"} 1`)

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNotFound(t *testing.T) {
	s, _ := newTestServer(t)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v2/nothing", bytes.NewReader(nil)))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
