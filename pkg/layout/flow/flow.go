// Package flow lays out a single section of equal-width columns, striping
// items across them round-robin.
//
// Unlike the waterfall engine in package layout, flow never looks at column
// heights: item i always lands in column i mod Columns. Every cell gets
// CellPadding on all four sides, and heights come from a [HeightProvider]
// that is told the padded column width.
package flow

import (
	"github.com/matzehuels/pinboard/pkg/geom"
	"github.com/matzehuels/pinboard/pkg/layout"
)

// HeightProvider returns the content height of an item laid out at width.
type HeightProvider interface {
	HeightForItem(item int, width float64) float64
}

// HeightFunc adapts a function to [HeightProvider].
type HeightFunc func(item int, width float64) float64

// HeightForItem calls f.
func (f HeightFunc) HeightForItem(item int, width float64) float64 { return f(item, width) }

// Config holds the fixed parameters of a flow layout.
type Config struct {
	Columns     int     `json:"columns" toml:"columns" yaml:"columns"`
	CellPadding float64 `json:"cell_padding,omitempty" toml:"cell_padding" yaml:"cell_padding"`
}

// Result is the output of a flow pass. Every entry belongs to section 0.
type Result struct {
	Items         []layout.Attributes `json:"items"`
	Columns       []int               `json:"columns"`
	ContentWidth  float64             `json:"content_width"`
	ContentHeight float64             `json:"content_height"`
}

// Compute places items cells for a viewport of the given width.
// Columns <= 0 places nothing.
func Compute(items int, hp HeightProvider, cfg Config, viewportWidth float64) Result {
	res := Result{ContentWidth: viewportWidth}
	if cfg.Columns <= 0 || items <= 0 {
		res.Items = []layout.Attributes{}
		res.Columns = []int{}
		return res
	}

	colWidth := viewportWidth / float64(cfg.Columns)
	pad := cfg.CellPadding
	padding := geom.InsetsAll(pad)

	xOffsets := make([]float64, cfg.Columns)
	for col := range xOffsets {
		xOffsets[col] = float64(col) * colWidth
	}
	cursors := make([]float64, cfg.Columns)

	res.Items = make([]layout.Attributes, 0, items)
	res.Columns = make([]int, 0, items)
	for item := range items {
		col := item % cfg.Columns
		h := hp.HeightForItem(item, colWidth-2*pad)

		raw := geom.NewRect(xOffsets[col], cursors[col], colWidth, h+2*pad)
		res.Items = append(res.Items, layout.Attributes{
			Kind:  layout.KindCell,
			Item:  item,
			Frame: raw.Inset(padding),
		})
		res.Columns = append(res.Columns, col)

		cursors[col] = raw.Bottom()
		res.ContentHeight = max(res.ContentHeight, raw.Bottom())
	}
	return res
}

// ContentSize returns the scrollable extent.
func (r Result) ContentSize() geom.Size {
	return geom.Size{Width: r.ContentWidth, Height: r.ContentHeight}
}

// AttributesInRect returns the cells whose padded frame intersects rect, in
// item order.
func (r Result) AttributesInRect(rect geom.Rect) []layout.Attributes {
	var out []layout.Attributes
	for _, a := range r.Items {
		if a.Frame.Intersects(rect) {
			out = append(out, a)
		}
	}
	return out
}

// ItemAttributes returns the entry of one item.
func (r Result) ItemAttributes(item int) (layout.Attributes, bool) {
	if item < 0 || item >= len(r.Items) {
		return layout.Attributes{}, false
	}
	return r.Items[item], true
}

// Column returns the column an item was placed in.
func (r Result) Column(item int) (int, bool) {
	if item < 0 || item >= len(r.Columns) {
		return 0, false
	}
	return r.Columns[item], true
}

// NumberOfSections is always 1.
func (r Result) NumberOfSections() int { return 1 }

// HeaderAttributes always reports false; flow layouts have no headers.
func (r Result) HeaderAttributes(int) (layout.Attributes, bool) { return layout.Attributes{}, false }

// HeaderIsSticky always reports false.
func (r Result) HeaderIsSticky(int) bool { return false }

// ToLayout converts r to a single-section [layout.Result] without header or
// footer, so flow output can go through the same sinks and caches.
func (r Result) ToLayout() layout.Result {
	items := make([]layout.Attributes, len(r.Items))
	copy(items, r.Items)
	return layout.Result{
		Sections:      []layout.SectionGeometry{{Items: items}},
		ContentWidth:  r.ContentWidth,
		ContentHeight: r.ContentHeight,
	}
}

// Layout is a flow engine holding the result of its most recent pass.
type Layout struct {
	cfg    Config
	result Result
}

// New returns an engine for cfg.
func New(cfg Config) *Layout {
	return &Layout{cfg: cfg}
}

// Config returns the engine configuration.
func (l *Layout) Config() Config { return l.cfg }

// Prepare replaces the current result with a fresh pass.
func (l *Layout) Prepare(items int, hp HeightProvider, viewportWidth float64) {
	l.result = Compute(items, hp, l.cfg, viewportWidth)
}

// Result returns the latest pass.
func (l *Layout) Result() Result { return l.result }

// ContentSize returns the scrollable size of the latest pass.
func (l *Layout) ContentSize() geom.Size { return l.result.ContentSize() }

// AttributesInRect returns the cells of the latest pass that intersect rect.
func (l *Layout) AttributesInRect(rect geom.Rect) []layout.Attributes {
	return l.result.AttributesInRect(rect)
}

// ItemAttributes returns the cell for item, or false when it is out of range.
func (l *Layout) ItemAttributes(item int) (layout.Attributes, bool) {
	return l.result.ItemAttributes(item)
}

// Column returns the column item was placed in.
func (l *Layout) Column(item int) (int, bool) { return l.result.Column(item) }

// NumberOfSections is always 1.
func (l *Layout) NumberOfSections() int { return 1 }

// HeaderAttributes reports false. A flow grid has no headers.
func (l *Layout) HeaderAttributes(section int) (layout.Attributes, bool) {
	return l.result.HeaderAttributes(section)
}

// HeaderIsSticky is always false.
func (l *Layout) HeaderIsSticky(int) bool { return false }
