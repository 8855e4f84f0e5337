package sticky

import (
	"maps"
	"slices"

	"github.com/matzehuels/pinboard/pkg/geom"
	"github.com/matzehuels/pinboard/pkg/layout"
)

// ZIndex is the stacking order assigned to pinned headers.
const ZIndex = 1024

// Fixed top offsets for hosts that draw a navigation bar over the content.
const (
	NavigationBarHeight         = 64
	NavigationBarHeightSafeArea = 88
)

// Source is the read-only view of a computed layout the overlay needs.
// [*layout.Layout] and [layout.Result] both satisfy it.
type Source interface {
	AttributesInRect(rect geom.Rect) []layout.Attributes
	HeaderAttributes(section int) (layout.Attributes, bool)
	NumberOfSections() int
	HeaderIsSticky(section int) bool
}

// FixedTopOffset returns the height of the bar a host pins above its content:
// 64 points, or 88 when the display reports a bottom safe-area inset.
func FixedTopOffset(safeAreaBottom float64) float64 {
	if safeAreaBottom > 0 {
		return NavigationBarHeightSafeArea
	}
	return NavigationBarHeight
}

// Adjust applies the sticky overlay to base, the entries src returned for a
// visible rectangle. offset is the scroll offset, topInset the host's top
// content inset and fixedTop the height of any bar drawn over the content.
//
// base is not modified. Injected headers are appended after the base entries
// in ascending section order.
func Adjust(src Source, base []layout.Attributes, offset geom.Point, topInset, fixedTop float64) []layout.Attributes {
	out := slices.Clone(base)

	for _, section := range missingHeaders(base) {
		h, ok := src.HeaderAttributes(section)
		if !ok || !src.HeaderIsSticky(section) {
			continue
		}
		if h.Frame.Width > 0 && h.Frame.Height > 0 {
			out = append(out, h)
		}
	}

	sections := src.NumberOfSections()
	for i := range out {
		a := &out[i]
		if !a.IsHeader() || !src.HeaderIsSticky(a.Section) {
			continue
		}

		localY := a.Frame.Y - offset.Y - fixedTop - topInset
		if localY < 0 {
			a.Frame.Y -= localY
		}
		if a.Section+1 < sections {
			if next, ok := src.HeaderAttributes(a.Section + 1); ok && a.Frame.Bottom() > next.Frame.Y {
				a.Frame.Y = next.Frame.Y - a.Frame.Height
			}
		}
		a.ZIndex = ZIndex
	}
	return out
}

// missingHeaders returns the sections that have a cell in entries but no
// header, in ascending order.
func missingHeaders(entries []layout.Attributes) []int {
	cells := make(map[int]struct{})
	headers := make(map[int]struct{})
	for _, a := range entries {
		switch a.Kind {
		case layout.KindCell:
			cells[a.Section] = struct{}{}
		case layout.KindHeader:
			headers[a.Section] = struct{}{}
		}
	}
	for s := range headers {
		delete(cells, s)
	}
	return slices.Sorted(maps.Keys(cells))
}

// Option configures a [Layout].
type Option func(*Layout)

// WithFixedTopOffset sets the height of a bar drawn over the top of the
// content. Headers pin below it.
func WithFixedTopOffset(h float64) Option { return func(l *Layout) { l.fixedTop = h } }

// Layout wraps a computed layout and answers visible-rectangle queries with
// the overlay applied.
type Layout struct {
	src      Source
	fixedTop float64
}

// New returns a sticky view over src.
func New(src Source, opts ...Option) *Layout {
	l := &Layout{src: src}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FixedTop returns the configured fixed top offset.
func (l *Layout) FixedTop() float64 { return l.fixedTop }

// AttributesInRect returns the entries intersecting rect, adjusted for the
// viewport's scroll offset and top content inset.
func (l *Layout) AttributesInRect(rect geom.Rect, v layout.Viewport) []layout.Attributes {
	return Adjust(l.src, l.src.AttributesInRect(rect), v.Offset, v.ContentInset.Top, l.fixedTop)
}

// Visible is AttributesInRect for the viewport's own visible rectangle.
func (l *Layout) Visible(v layout.Viewport) []layout.Attributes {
	return l.AttributesInRect(v.VisibleRect(), v)
}

// ShouldInvalidateForBoundsChange reports whether a bounds change requires a
// new adjustment. Any scroll moves pinned headers, so it always does.
func (l *Layout) ShouldInvalidateForBoundsChange(geom.Rect) bool { return true }

// AllSticky wraps src so every section header is treated as sticky.
func AllSticky(src Source) Source { return allSticky{src} }

type allSticky struct{ Source }

func (allSticky) HeaderIsSticky(int) bool { return true }
