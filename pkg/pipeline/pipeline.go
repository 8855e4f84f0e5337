// Package pipeline provides the layout pipeline shared by the CLI and the
// HTTP service.
//
// The pipeline has three stages:
//
//  1. Layout: run the waterfall or flow engine over a document
//  2. Sticky: apply the sticky-header overlay for a scroll offset (optional)
//  3. Render: write the result as JSON or SVG
//
// Layouts and artifacts are cached by content hash, so repeated requests for
// the same document and options skip the engine entirely.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	doc, _ := document.ReadFile("feed.toml")
//	result, err := runner.Execute(ctx, doc, pipeline.Options{
//	    Formats: []string{"svg"},
//	    Sticky:  true,
//	    OffsetY: 420,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinboard/pkg/cache"
	"github.com/matzehuels/pinboard/pkg/document"
	"github.com/matzehuels/pinboard/pkg/errors"
	"github.com/matzehuels/pinboard/pkg/geom"
	"github.com/matzehuels/pinboard/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultEngine is used when neither the options nor the document name one.
	DefaultEngine = document.EngineWaterfall

	// DefaultWidth is the default viewport width in points.
	DefaultWidth = 375.0

	// DefaultHeight is the default viewport height in points.
	DefaultHeight = 667.0
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
}

// ValidEngines is the set of supported layout engines.
var ValidEngines = map[string]bool{
	document.EngineWaterfall: true,
	document.EngineFlow:      true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// Zero-valued layout fields fall back to the document, then to the defaults.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Engine         string  `json:"engine,omitempty"`
	Width          float64 `json:"width,omitempty"`
	Height         float64 `json:"height,omitempty"`
	FixedTopOffset float64 `json:"fixed_top_offset,omitempty"`
	Refresh        bool    `json:"refresh,omitempty"`

	// Sticky options
	Sticky  bool    `json:"sticky,omitempty"`
	OffsetY float64 `json:"offset_y,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Labels  bool     `json:"labels,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// insets come from the document; they are not an option.
	insets geom.EdgeInsets
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// DocumentHash is the content hash of the input document.
	DocumentHash string

	// Layout is the computed geometry table.
	Layout layout.Result

	// Sticky holds the overlay-adjusted entries visible in the viewport.
	// It is nil unless Options.Sticky is set.
	Sticky []layout.Attributes

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Engine     string
	Sections   int
	Items      int
	Pinned     int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEngine checks that an engine name is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return errors.New(errors.ErrCodeInvalidEngine, "invalid engine: %q (must be one of: waterfall, flow)", engine)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ApplyDocument fills zero-valued layout options from doc. Options set
// explicitly win over the document.
func (o *Options) ApplyDocument(doc *document.Document) {
	if doc == nil {
		return
	}
	if o.Engine == "" {
		o.Engine = doc.Engine
	}
	if o.Width == 0 {
		o.Width = doc.Viewport.Width
	}
	if o.Height == 0 {
		o.Height = doc.Viewport.Height
	}
	if o.FixedTopOffset == 0 {
		o.FixedTopOffset = doc.FixedTopOffset
	}
	if o.OffsetY == 0 {
		o.OffsetY = doc.Viewport.Offset.Y
	}
	o.insets = doc.Viewport.ContentInset
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	if err := errors.ValidateLength("width", o.Width); err != nil {
		return err
	}
	if err := errors.ValidateLength("height", o.Height); err != nil {
		return err
	}
	return errors.ValidateLength("fixed top offset", o.FixedTopOffset)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// Viewport returns the viewport the options describe.
func (o *Options) Viewport() layout.Viewport {
	return layout.Viewport{
		Width:        o.Width,
		Height:       o.Height,
		ContentInset: o.insets,
		Offset:       geom.Point{Y: o.OffsetY},
	}
}

// IsFlow returns true if the flow engine is selected.
func (o *Options) IsFlow() bool {
	return o.Engine == document.EngineFlow
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Engine:         o.Engine,
		Width:          o.Width,
		Height:         o.Height,
		InsetLeft:      o.insets.Left,
		InsetRight:     o.insets.Right,
		FixedTopOffset: o.FixedTopOffset,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format: format,
		Labels: o.Labels,
		Sticky: o.Sticky,
	}
	if o.Sticky {
		k.OffsetY = o.OffsetY
	}
	return k
}
