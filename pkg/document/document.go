// Package document defines the input file format for pinboard layouts.
//
// A document describes everything a layout pass needs: the viewport, the
// engine to run and either a list of waterfall sections or a flow item list.
// Documents can be written as JSON, TOML or YAML; the format is picked from
// the file extension.
//
//	engine = "waterfall"
//
//	[viewport]
//	width = 375
//	height = 667
//
//	[[sections]]
//	columns = 2
//	line_spacing = 8
//	interitem_spacing = 8
//	sticky = true
//	header = { width = 375, height = 44 }
//	heights = [120, 80, 200, 95]
//
// A [*Document] is itself a [layout.Provider] and a [flow.HeightProvider].
package document

import (
	"github.com/matzehuels/pinboard/pkg/geom"
	"github.com/matzehuels/pinboard/pkg/layout"
	"github.com/matzehuels/pinboard/pkg/layout/flow"
)

// Engine names.
const (
	EngineWaterfall = "waterfall"
	EngineFlow      = "flow"
)

// Document is a layout input.
type Document struct {
	Name           string          `json:"name,omitempty" toml:"name" yaml:"name,omitempty"`
	Engine         string          `json:"engine,omitempty" toml:"engine" yaml:"engine,omitempty"`
	Viewport       layout.Viewport `json:"viewport" toml:"viewport" yaml:"viewport"`
	FixedTopOffset float64         `json:"fixed_top_offset,omitempty" toml:"fixed_top_offset" yaml:"fixed_top_offset,omitempty"`
	Sections       []Section       `json:"sections,omitempty" toml:"sections" yaml:"sections,omitempty"`
	Flow           *Flow           `json:"flow,omitempty" toml:"flow" yaml:"flow,omitempty"`
}

// Section is one waterfall section.
//
// Items lists explicit item sizes. As a shorthand, Heights lists item heights
// only; those items get ItemWidth, or when ItemWidth is zero, the width that
// fills Columns columns across the viewport.
type Section struct {
	Columns          int             `json:"columns" toml:"columns" yaml:"columns"`
	LineSpacing      float64         `json:"line_spacing,omitempty" toml:"line_spacing" yaml:"line_spacing,omitempty"`
	InteritemSpacing float64         `json:"interitem_spacing,omitempty" toml:"interitem_spacing" yaml:"interitem_spacing,omitempty"`
	Insets           geom.EdgeInsets `json:"insets,omitempty" toml:"insets" yaml:"insets,omitempty"`
	Header           geom.Size       `json:"header,omitempty" toml:"header" yaml:"header,omitempty"`
	Footer           geom.Size       `json:"footer,omitempty" toml:"footer" yaml:"footer,omitempty"`
	Sticky           bool            `json:"sticky,omitempty" toml:"sticky" yaml:"sticky,omitempty"`
	Items            []geom.Size     `json:"items,omitempty" toml:"items" yaml:"items,omitempty"`
	ItemWidth        float64         `json:"item_width,omitempty" toml:"item_width" yaml:"item_width,omitempty"`
	Heights          []float64       `json:"heights,omitempty" toml:"heights" yaml:"heights,omitempty"`
}

// Flow describes the input of the flow engine.
type Flow struct {
	flow.Config `yaml:",inline"`
	Heights     []float64 `json:"heights" toml:"heights" yaml:"heights"`
}

// EngineName returns the engine, defaulting to waterfall.
func (d *Document) EngineName() string {
	if d.Engine == "" {
		return EngineWaterfall
	}
	return d.Engine
}

// NumberOfSections implements [layout.Provider].
func (d *Document) NumberOfSections() int { return len(d.Sections) }

// NumberOfItems implements [layout.Provider].
func (d *Document) NumberOfItems(section int) int {
	s := d.Sections[section]
	return len(s.Items) + len(s.Heights)
}

// SectionConfig implements [layout.Provider].
func (d *Document) SectionConfig(section int) layout.SectionConfig {
	s := d.Sections[section]
	return layout.SectionConfig{
		Columns:          s.Columns,
		LineSpacing:      s.LineSpacing,
		InteritemSpacing: s.InteritemSpacing,
		Insets:           s.Insets,
		HeaderSize:       s.Header,
		FooterSize:       s.Footer,
		StickyHeader:     s.Sticky,
	}
}

// SizeForItem implements [layout.Provider]. Explicit Items come first,
// followed by the Heights shorthand.
func (d *Document) SizeForItem(section, item int) geom.Size {
	s := d.Sections[section]
	if item < len(s.Items) {
		return s.Items[item]
	}
	return geom.NewSize(d.itemWidth(s), s.Heights[item-len(s.Items)])
}

func (d *Document) itemWidth(s Section) float64 {
	if s.ItemWidth > 0 || s.Columns <= 0 {
		return s.ItemWidth
	}
	avail := d.Viewport.ContentWidth() - s.Insets.Horizontal() - float64(s.Columns-1)*s.InteritemSpacing
	return max(avail/float64(s.Columns), 0)
}

// HeightForItem implements [flow.HeightProvider].
func (d *Document) HeightForItem(item int, _ float64) float64 {
	return d.Flow.Heights[item]
}

// FlowItems returns the number of flow items.
func (d *Document) FlowItems() int {
	if d.Flow == nil {
		return 0
	}
	return len(d.Flow.Heights)
}

// FlowConfig returns the flow engine configuration.
func (d *Document) FlowConfig() flow.Config {
	if d.Flow == nil {
		return flow.Config{}
	}
	return d.Flow.Config
}

// ItemCount returns the total number of items across all sections, or the
// flow item count for flow documents.
func (d *Document) ItemCount() int {
	if d.EngineName() == EngineFlow {
		return d.FlowItems()
	}
	n := 0
	for i := range d.Sections {
		n += d.NumberOfItems(i)
	}
	return n
}
