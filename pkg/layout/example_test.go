package layout_test

import (
	"fmt"

	"github.com/matzehuels/pinboard/pkg/geom"
	"github.com/matzehuels/pinboard/pkg/layout"
)

// feed is a single-section provider with fixed-width pins.
type feed []float64

func (f feed) NumberOfSections() int { return 1 }
func (f feed) NumberOfItems(int) int { return len(f) }
func (f feed) SizeForItem(_, item int) geom.Size {
	return geom.NewSize(100, f[item])
}
func (f feed) SectionConfig(int) layout.SectionConfig {
	return layout.SectionConfig{
		Columns:          2,
		LineSpacing:      10,
		InteritemSpacing: 10,
		HeaderSize:       geom.NewSize(210, 30),
	}
}

func ExampleCompute() {
	res := layout.Compute(feed{120, 60, 80}, layout.Viewport{Width: 210})

	for _, a := range res.All() {
		fmt.Println(a.Kind, a.Item, a.Frame.X, a.Frame.Y)
	}
	fmt.Println("height:", res.ContentHeight)
	// Output:
	// header 0 0 0
	// cell 0 0 30
	// cell 1 110 30
	// cell 2 110 100
	// height: 180
}

func ExampleLayout_AttributesInRect() {
	var l layout.Layout
	l.Prepare(feed{120, 60, 80}, layout.Viewport{Width: 210})

	// Only the entries overlapping the first 50 points below the header.
	for _, a := range l.AttributesInRect(geom.NewRect(0, 30, 210, 50)) {
		fmt.Println(a.Kind, a.Item)
	}
	// Output:
	// cell 0
	// cell 1
}
