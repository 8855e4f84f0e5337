package layout

import "github.com/matzehuels/pinboard/pkg/geom"

// Result is the complete output table of a layout pass.
type Result struct {
	Sections      []SectionGeometry `json:"sections"`
	ContentWidth  float64           `json:"content_width"`
	ContentHeight float64           `json:"content_height"`
}

// ContentSize returns the scrollable extent of the layout.
func (r Result) ContentSize() geom.Size {
	return geom.Size{Width: r.ContentWidth, Height: r.ContentHeight}
}

// NumberOfSections returns the number of sections in the table.
func (r Result) NumberOfSections() int { return len(r.Sections) }

// NumberOfItems returns the number of placed items in a section, or 0 when the
// section is out of range.
func (r Result) NumberOfItems(section int) int {
	if section < 0 || section >= len(r.Sections) {
		return 0
	}
	return len(r.Sections[section].Items)
}

// HeaderIsSticky reports whether a section's header was configured sticky.
func (r Result) HeaderIsSticky(section int) bool {
	if section < 0 || section >= len(r.Sections) {
		return false
	}
	return r.Sections[section].StickyHeader
}

// AttributesInRect returns every entry whose frame intersects rect, ordered
// header, items, footer for each section in section order.
func (r Result) AttributesInRect(rect geom.Rect) []Attributes {
	var out []Attributes
	for _, s := range r.Sections {
		if s.Header != nil && s.Header.Frame.Intersects(rect) {
			out = append(out, *s.Header)
		}
		for _, a := range s.Items {
			if a.Frame.Intersects(rect) {
				out = append(out, a)
			}
		}
		if s.Footer != nil && s.Footer.Frame.Intersects(rect) {
			out = append(out, *s.Footer)
		}
	}
	return out
}

// ItemAttributes returns the entry of one item.
func (r Result) ItemAttributes(section, item int) (Attributes, bool) {
	if section < 0 || section >= len(r.Sections) {
		return Attributes{}, false
	}
	items := r.Sections[section].Items
	if item < 0 || item >= len(items) {
		return Attributes{}, false
	}
	return items[item], true
}

// HeaderAttributes returns a section's header, or false when the section is
// out of range or has no header.
func (r Result) HeaderAttributes(section int) (Attributes, bool) {
	if section < 0 || section >= len(r.Sections) || r.Sections[section].Header == nil {
		return Attributes{}, false
	}
	return *r.Sections[section].Header, true
}

// FooterAttributes returns a section's footer, or false when the section is
// out of range or has no footer.
func (r Result) FooterAttributes(section int) (Attributes, bool) {
	if section < 0 || section >= len(r.Sections) || r.Sections[section].Footer == nil {
		return Attributes{}, false
	}
	return *r.Sections[section].Footer, true
}

// All returns every entry in table order, regardless of position.
func (r Result) All() []Attributes {
	var out []Attributes
	for _, s := range r.Sections {
		if s.Header != nil {
			out = append(out, *s.Header)
		}
		out = append(out, s.Items...)
		if s.Footer != nil {
			out = append(out, *s.Footer)
		}
	}
	return out
}

// ItemCount returns the total number of placed items across all sections.
func (r Result) ItemCount() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Items)
	}
	return n
}
