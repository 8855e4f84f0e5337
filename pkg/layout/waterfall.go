package layout

import "github.com/matzehuels/pinboard/pkg/geom"

// Compute runs a full waterfall pass and returns a fresh table.
//
// Sections are laid out in order on a shared vertical cursor. Within a section
// each item is placed in the column with the smallest running bottom (lowest
// index on ties) at x = insets.left + column*(itemWidth+interitemSpacing).
// The trailing line spacing of a section with items is removed before its
// footer is placed. Compute never clamps provider values.
func Compute(p Provider, v Viewport) Result {
	sectionCount := p.NumberOfSections()
	res := Result{
		Sections:     make([]SectionGeometry, 0, max(sectionCount, 0)),
		ContentWidth: v.ContentWidth(),
	}

	var offsetY float64
	for section := 0; section < sectionCount; section++ {
		cfg := p.SectionConfig(section)
		itemCount := p.NumberOfItems(section)
		sg := SectionGeometry{StickyHeader: cfg.StickyHeader}

		if !cfg.HeaderSize.IsZero() {
			sg.Header = &Attributes{
				Kind:    KindHeader,
				Section: section,
				Frame:   geom.NewRect(0, offsetY, cfg.HeaderSize.Width, cfg.HeaderSize.Height),
			}
		}
		offsetY += cfg.HeaderSize.Height + cfg.Insets.Top

		if cfg.Columns > 0 {
			sg.Items = make([]Attributes, 0, max(itemCount, 0))
			cursors := make([]float64, cfg.Columns)
			for i := range cursors {
				cursors[i] = offsetY
			}

			for item := 0; item < itemCount; item++ {
				size := p.SizeForItem(section, item)
				col := shortestColumn(cursors)
				x := cfg.Insets.Left + float64(col)*(size.Width+cfg.InteritemSpacing)

				sg.Items = append(sg.Items, Attributes{
					Kind:    KindCell,
					Section: section,
					Item:    item,
					Frame:   geom.NewRect(x, cursors[col], size.Width, size.Height),
				})

				cursors[col] += size.Height + cfg.LineSpacing
				for _, c := range cursors {
					offsetY = max(offsetY, c)
				}
			}
		} else {
			sg.Items = []Attributes{}
		}

		// Removes the spacing added after the last row.
		if itemCount > 0 {
			offsetY -= cfg.LineSpacing
		}

		if !cfg.FooterSize.IsZero() {
			sg.Footer = &Attributes{
				Kind:    KindFooter,
				Section: section,
				Frame:   geom.NewRect(0, offsetY+cfg.Insets.Bottom, cfg.FooterSize.Width, cfg.FooterSize.Height),
			}
		}
		offsetY += cfg.FooterSize.Height + cfg.Insets.Bottom

		res.Sections = append(res.Sections, sg)
		res.ContentHeight = max(res.ContentHeight, offsetY)
	}

	return res
}

// shortestColumn returns the index of the smallest cursor, scanning left to
// right so the first minimum wins.
func shortestColumn(cursors []float64) int {
	col := 0
	for i := 1; i < len(cursors); i++ {
		if cursors[i] < cursors[col] {
			col = i
		}
	}
	return col
}

// Layout is a waterfall engine that owns the table of its most recent pass.
// Queries read that table and stay valid until the next Prepare. A Layout is
// not safe for concurrent use; hosts serialize passes.
type Layout struct {
	result   Result
	prepared bool
}

// NewLayout returns an engine with an empty table.
func NewLayout() *Layout {
	return &Layout{}
}

// Prepare discards the previous table and computes a new one.
func (l *Layout) Prepare(p Provider, v Viewport) {
	l.result = Compute(p, v)
	l.prepared = true
}

// Prepared reports whether at least one pass has run.
func (l *Layout) Prepared() bool { return l.prepared }

// Result returns the table of the latest pass.
func (l *Layout) Result() Result { return l.result }

// ContentSize returns the content extent of the latest pass.
func (l *Layout) ContentSize() geom.Size { return l.result.ContentSize() }

// NumberOfSections returns the section count of the latest pass.
func (l *Layout) NumberOfSections() int { return l.result.NumberOfSections() }

// HeaderIsSticky reports whether a section's header is sticky.
func (l *Layout) HeaderIsSticky(section int) bool { return l.result.HeaderIsSticky(section) }

// AttributesInRect returns the entries intersecting rect.
func (l *Layout) AttributesInRect(rect geom.Rect) []Attributes {
	return l.result.AttributesInRect(rect)
}

// ItemAttributes returns the entry of one item.
func (l *Layout) ItemAttributes(section, item int) (Attributes, bool) {
	return l.result.ItemAttributes(section, item)
}

// HeaderAttributes returns a section's header entry.
func (l *Layout) HeaderAttributes(section int) (Attributes, bool) {
	return l.result.HeaderAttributes(section)
}

// FooterAttributes returns a section's footer entry.
func (l *Layout) FooterAttributes(section int) (Attributes, bool) {
	return l.result.FooterAttributes(section)
}
