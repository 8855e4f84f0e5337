package sticky

import (
	"testing"

	"github.com/matzehuels/pinboard/pkg/geom"
	"github.com/matzehuels/pinboard/pkg/layout"
)

type feedSection struct {
	sticky  bool
	header  float64
	heights []float64
}

type feed []feedSection

func (f feed) NumberOfSections() int         { return len(f) }
func (f feed) NumberOfItems(section int) int { return len(f[section].heights) }
func (f feed) SizeForItem(section, item int) geom.Size {
	return geom.NewSize(375, f[section].heights[item])
}
func (f feed) SectionConfig(section int) layout.SectionConfig {
	s := f[section]
	cfg := layout.SectionConfig{Columns: 1, StickyHeader: s.sticky}
	if s.header > 0 {
		cfg.HeaderSize = geom.NewSize(375, s.header)
	}
	return cfg
}

// twoSections lays out header 0 at 0..50, its items at 50..350, header 1 at
// 350..400 and its items at 400..700.
func twoSections(sticky bool) layout.Result {
	return layout.Compute(feed{
		{sticky: sticky, header: 50, heights: []float64{100, 100, 100}},
		{sticky: sticky, header: 50, heights: []float64{100, 100, 100}},
	}, layout.Viewport{Width: 375})
}

func find(entries []layout.Attributes, kind layout.Kind, section int) (layout.Attributes, bool) {
	for _, a := range entries {
		if a.Kind == kind && a.Section == section {
			return a, true
		}
	}
	return layout.Attributes{}, false
}

func visible(res layout.Result, offsetY float64) []layout.Attributes {
	v := layout.Viewport{Width: 375, Height: 667, Offset: geom.Point{Y: offsetY}}
	return New(res).Visible(v)
}

func TestPinAndPush(t *testing.T) {
	res := twoSections(true)

	// Section 1's header is 20 points below the top edge.
	got := visible(res, 330)

	first, ok := find(got, layout.KindHeader, 0)
	if !ok {
		t.Fatal("header 0 missing while its cells are visible")
	}
	second, ok := find(got, layout.KindHeader, 1)
	if !ok {
		t.Fatal("header 1 missing")
	}
	if first.Frame.Bottom() != second.Frame.Y {
		t.Errorf("header 0 bottom = %v, want header 1 top %v", first.Frame.Bottom(), second.Frame.Y)
	}
	if first.Frame.Y != 300 {
		t.Errorf("header 0 y = %v, want 300", first.Frame.Y)
	}
	if second.Frame.Y != 350 {
		t.Errorf("header 1 y = %v, want 350", second.Frame.Y)
	}
	if first.ZIndex != ZIndex || second.ZIndex != ZIndex {
		t.Errorf("ZIndex = %d, %d, want %d", first.ZIndex, second.ZIndex, ZIndex)
	}

	// Section 0's last cell ends exactly at the top edge.
	got = visible(res, 350)
	if _, ok := find(got, layout.KindHeader, 0); ok {
		t.Error("header 0 present after its cells scrolled out")
	}
	if _, ok := find(got, layout.KindCell, 0); ok {
		t.Error("section 0 cell present after scrolling past it")
	}
	second, ok = find(got, layout.KindHeader, 1)
	if !ok || second.Frame.Y != 350 {
		t.Errorf("header 1 = %+v (found %v), want pinned at 350", second.Frame, ok)
	}
}

func TestPinnedHeaderFollowsOffset(t *testing.T) {
	res := twoSections(true)

	tests := []struct {
		offset float64
		wantY  float64
	}{
		{0, 0},
		{40, 40},
		{200, 200},
		{300, 300},
		{320, 300}, // pushed by header 1 at 350
	}
	for _, tt := range tests {
		h, ok := find(visible(res, tt.offset), layout.KindHeader, 0)
		if !ok {
			t.Errorf("offset %v: header 0 missing", tt.offset)
			continue
		}
		if h.Frame.Y != tt.wantY {
			t.Errorf("offset %v: header 0 y = %v, want %v", tt.offset, h.Frame.Y, tt.wantY)
		}
	}
}

// The collision clamp looks only at the next section's stored header. A
// pinned header is never pushed by headers further down.
func TestClampChecksOnlyNextHeader(t *testing.T) {
	tests := map[string]struct {
		feed   feed
		offset float64
		want   map[int]float64 // section -> header y
	}{
		// Header 0 at 0..100, cells to 300. Header 1 at 300..310 over a
		// 5-point section. Header 2 at 315..365.
		"short middle section": {
			feed: feed{
				{sticky: true, header: 100, heights: []float64{200}},
				{sticky: true, header: 10, heights: []float64{5}},
				{sticky: true, header: 50, heights: []float64{300}},
			},
			offset: 290,
			want:   map[int]float64{0: 200, 1: 300, 2: 315},
		},
		// Section 1 has no header, so header 0 stays pinned and overlaps
		// header 2 at 305.
		"next section without header": {
			feed: feed{
				{sticky: true, header: 100, heights: []float64{200}},
				{sticky: true, heights: []float64{5}},
				{sticky: true, header: 50, heights: []float64{300}},
			},
			offset: 280,
			want:   map[int]float64{0: 280, 2: 305},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			res := layout.Compute(tt.feed, layout.Viewport{Width: 375})
			got := visible(res, tt.offset)

			for section, wantY := range tt.want {
				h, ok := find(got, layout.KindHeader, section)
				if !ok {
					t.Errorf("header %d missing", section)
					continue
				}
				if h.Frame.Y != wantY {
					t.Errorf("header %d y = %v, want %v", section, h.Frame.Y, wantY)
				}
			}
			if _, ok := find(got, layout.KindHeader, 1); ok != (tt.feed[1].header > 0) {
				t.Errorf("header 1 present = %v, want %v", ok, tt.feed[1].header > 0)
			}
		})
	}
}

func TestFixedTopAndInset(t *testing.T) {
	res := twoSections(true)
	l := New(res, WithFixedTopOffset(64))

	v := layout.Viewport{
		Width:        375,
		Height:       667,
		ContentInset: geom.EdgeInsets{Top: 10},
		Offset:       geom.Point{Y: 100},
	}
	h, ok := find(l.Visible(v), layout.KindHeader, 0)
	if !ok {
		t.Fatal("header 0 missing")
	}
	if want := 100.0 + 64 + 10; h.Frame.Y != want {
		t.Errorf("header 0 y = %v, want %v", h.Frame.Y, want)
	}
}

func TestNonStickyHeadersPassThrough(t *testing.T) {
	res := twoSections(false)

	got := visible(res, 330)
	if _, ok := find(got, layout.KindHeader, 0); ok {
		t.Error("non-sticky header 0 injected")
	}
	h, ok := find(got, layout.KindHeader, 1)
	if !ok {
		t.Fatal("header 1 missing")
	}
	if stored, _ := res.HeaderAttributes(1); h != stored {
		t.Errorf("header 1 = %+v, want stored %+v", h, stored)
	}
}

func TestAdjustDoesNotModifyBase(t *testing.T) {
	res := twoSections(true)
	rect := geom.NewRect(0, 330, 375, 667)
	base := res.AttributesInRect(rect)
	before := append([]layout.Attributes(nil), base...)

	_ = Adjust(res, base, geom.Point{Y: 330}, 0, 0)

	for i := range base {
		if base[i] != before[i] {
			t.Errorf("base[%d] changed: %+v -> %+v", i, before[i], base[i])
		}
	}
	if h, _ := res.HeaderAttributes(0); h.Frame.Y != 0 || h.ZIndex != 0 {
		t.Errorf("stored header 0 changed: %+v", h)
	}
}

func TestInjectionOrder(t *testing.T) {
	// Three short sticky sections; a rect covering only cells of all three.
	res := layout.Compute(feed{
		{sticky: true, header: 20, heights: []float64{100}},
		{sticky: true, header: 20, heights: []float64{100}},
		{sticky: true, header: 20, heights: []float64{100}},
	}, layout.Viewport{Width: 375})

	base := []layout.Attributes{}
	for s := 2; s >= 0; s-- {
		a, _ := res.ItemAttributes(s, 0)
		base = append(base, a)
	}
	got := Adjust(res, base, geom.Point{}, 0, 0)

	if len(got) != 6 {
		t.Fatalf("Adjust() returned %d entries, want 6", len(got))
	}
	for i, want := range []int{0, 1, 2} {
		a := got[3+i]
		if !a.IsHeader() || a.Section != want {
			t.Errorf("entry %d = %v of section %d, want header of section %d", 3+i, a.Kind, a.Section, want)
		}
	}
}

func TestEmptyHeaderNotInjected(t *testing.T) {
	res := layout.Compute(feed{
		{sticky: true, heights: []float64{100, 100}},
	}, layout.Viewport{Width: 375})

	got := visible(res, 50)
	for _, a := range got {
		if a.IsHeader() {
			t.Errorf("unexpected header %+v", a)
		}
	}
}

func TestAllSticky(t *testing.T) {
	res := twoSections(false)
	l := New(AllSticky(res))

	got := l.Visible(layout.Viewport{Width: 375, Height: 667, Offset: geom.Point{Y: 330}})
	h, ok := find(got, layout.KindHeader, 0)
	if !ok {
		t.Fatal("header 0 not injected by AllSticky")
	}
	if h.Frame.Y != 300 {
		t.Errorf("header 0 y = %v, want 300", h.Frame.Y)
	}
}

func TestShouldInvalidateForBoundsChange(t *testing.T) {
	l := New(twoSections(true))
	for _, r := range []geom.Rect{{}, geom.NewRect(0, 10, 375, 667)} {
		if !l.ShouldInvalidateForBoundsChange(r) {
			t.Errorf("ShouldInvalidateForBoundsChange(%+v) = false", r)
		}
	}
}

func TestFixedTopOffset(t *testing.T) {
	if got := FixedTopOffset(0); got != 64 {
		t.Errorf("FixedTopOffset(0) = %v, want 64", got)
	}
	if got := FixedTopOffset(34); got != 88 {
		t.Errorf("FixedTopOffset(34) = %v, want 88", got)
	}
}
