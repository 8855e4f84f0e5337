package layout

import "github.com/matzehuels/pinboard/pkg/geom"

// SectionConfig is the per-section configuration resolved once per pass.
// The zero value is the default for every field: no columns, no spacing, zero
// insets, no header or footer, and a non-sticky header.
type SectionConfig struct {
	Columns          int
	LineSpacing      float64
	InteritemSpacing float64
	Insets           geom.EdgeInsets
	HeaderSize       geom.Size
	FooterSize       geom.Size
	StickyHeader     bool
}

// Provider supplies the input of a layout pass. The engine calls it only
// while a pass runs and keeps no reference to it afterwards.
type Provider interface {
	// NumberOfSections returns the section count for the pass.
	NumberOfSections() int
	// NumberOfItems returns the item count of a section.
	NumberOfItems(section int) int
	// SectionConfig returns the configuration of a section.
	SectionConfig(section int) SectionConfig
	// SizeForItem returns the intrinsic size of an item. Items sharing a row
	// are expected to share a width; the engine trusts whatever is returned.
	SizeForItem(section, item int) geom.Size
}

// Viewport carries the host values a pass and the sticky overlay need.
type Viewport struct {
	Width        float64         `json:"width" toml:"width" yaml:"width"`
	Height       float64         `json:"height,omitempty" toml:"height" yaml:"height,omitempty"`
	ContentInset geom.EdgeInsets `json:"content_inset,omitempty" toml:"content_inset" yaml:"content_inset,omitempty"`
	Offset       geom.Point      `json:"offset,omitempty" toml:"offset" yaml:"offset,omitempty"`
}

// ContentWidth returns the viewport width minus the horizontal content insets.
func (v Viewport) ContentWidth() float64 {
	return v.Width - v.ContentInset.Left - v.ContentInset.Right
}

// VisibleRect returns the content-space rectangle covered by the viewport at
// its current scroll offset.
func (v Viewport) VisibleRect() geom.Rect {
	return geom.NewRect(v.Offset.X, v.Offset.Y, v.Width, v.Height)
}
