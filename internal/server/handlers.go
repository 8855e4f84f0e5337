package server

import (
	"encoding/json"
	"net/http"
	"slices"

	"github.com/matzehuels/pinboard/pkg/buildinfo"
	"github.com/matzehuels/pinboard/pkg/document"
	"github.com/matzehuels/pinboard/pkg/errors"
	"github.com/matzehuels/pinboard/pkg/geom"
	"github.com/matzehuels/pinboard/pkg/layout"
	"github.com/matzehuels/pinboard/pkg/layout/sticky"
	"github.com/matzehuels/pinboard/pkg/pipeline"
)

// LayoutRequest is the body of POST /v1/layout.
type LayoutRequest struct {
	Document json.RawMessage  `json:"document"`
	Options  pipeline.Options `json:"options"`
}

// LayoutResponse is the body returned by POST /v1/layout. Layout holds the
// JSON sink output; SVG is set when the svg format was requested.
type LayoutResponse struct {
	RequestID    string             `json:"request_id"`
	DocumentHash string             `json:"document_hash"`
	CacheInfo    pipeline.CacheInfo `json:"cache"`
	Layout       json.RawMessage    `json:"layout"`
	SVG          string             `json:"svg,omitempty"`
}

// StickyRequest is the body of POST /v1/sticky. Rect defaults to the
// viewport's visible rectangle at OffsetY.
type StickyRequest struct {
	Document json.RawMessage  `json:"document"`
	Options  pipeline.Options `json:"options"`
	Rect     *geom.Rect       `json:"rect,omitempty"`
}

// StickyResponse is the body returned by POST /v1/sticky.
type StickyResponse struct {
	RequestID     string              `json:"request_id"`
	ContentWidth  float64             `json:"content_width"`
	ContentHeight float64             `json:"content_height"`
	Entries       []layout.Attributes `json:"entries"`
}

type errorBody struct {
	RequestID string `json:"request_id"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) layout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if !s.decode(w, r, &req) {
		return
	}
	doc, err := pipeline.ParseDocument(req.Document, document.FormatJSON)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	opts := req.Options
	opts.Logger = s.logger
	if !slices.Contains(opts.Formats, pipeline.FormatJSON) {
		opts.Formats = append(opts.Formats, pipeline.FormatJSON)
	}
	res, err := s.runner.Execute(r.Context(), doc, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, LayoutResponse{
		RequestID:    RequestID(r.Context()),
		DocumentHash: res.DocumentHash,
		CacheInfo:    res.CacheInfo,
		Layout:       res.Artifacts[pipeline.FormatJSON],
		SVG:          string(res.Artifacts[pipeline.FormatSVG]),
	})
}

func (s *Server) sticky(w http.ResponseWriter, r *http.Request) {
	var req StickyRequest
	if !s.decode(w, r, &req) {
		return
	}
	doc, err := pipeline.ParseDocument(req.Document, document.FormatJSON)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	opts := req.Options
	opts.Logger = s.logger
	opts.ApplyDocument(doc)
	if err := opts.ValidateForLayout(); err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.runner.GenerateLayout(r.Context(), doc, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var entries []layout.Attributes
	if req.Rect != nil {
		overlay := sticky.New(res, sticky.WithFixedTopOffset(opts.FixedTopOffset))
		entries = overlay.AttributesInRect(*req.Rect, opts.Viewport())
	} else {
		entries = s.runner.Sticky(r.Context(), res, opts)
	}
	if entries == nil {
		entries = []layout.Attributes{}
	}

	writeJSON(w, http.StatusOK, StickyResponse{
		RequestID:     RequestID(r.Context()),
		ContentWidth:  res.ContentWidth,
		ContentHeight: res.ContentHeight,
		Entries:       entries,
	})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.fail(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return false
	}
	return true
}

// fail writes err with a status derived from its code.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{
		RequestID: RequestID(r.Context()),
		Code:      code,
		Message:   msg,
	})
}

func statusFor(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound), errors.Is(err, errors.ErrCodeFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
