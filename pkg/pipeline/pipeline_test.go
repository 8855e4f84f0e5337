package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/pinboard/pkg/cache"
	"github.com/matzehuels/pinboard/pkg/document"
	"github.com/matzehuels/pinboard/pkg/errors"
	"github.com/matzehuels/pinboard/pkg/geom"
	"github.com/matzehuels/pinboard/pkg/layout"
	"github.com/matzehuels/pinboard/pkg/layout/flow"
	"github.com/matzehuels/pinboard/pkg/layout/sticky"
)

// board is a 200pt wide, two-column section with a sticky header. Items are
// 100pt wide once the width is derived:
//
//	header (0,0,200,40)
//	item 0 (0,40,100,100)   item 1 (100,40,100,50)
//	                        item 2 (100,90,100,60)
func board() *document.Document {
	return &document.Document{
		Name:     "board",
		Viewport: layout.Viewport{Width: 200, Height: 100},
		Sections: []document.Section{{
			Columns: 2,
			Header:  geom.NewSize(200, 40),
			Sticky:  true,
			Heights: []float64{100, 50, 60},
		}},
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"json", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "json"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateEngine(t *testing.T) {
	tests := []struct {
		engine  string
		wantErr bool
	}{
		{"waterfall", false},
		{"flow", false},
		{"grid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateEngine(tt.engine)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateEngine(%q) error = %v, wantErr %v", tt.engine, err, tt.wantErr)
		}
		if err != nil && errors.GetCode(err) != errors.ErrCodeInvalidEngine {
			t.Errorf("ValidateEngine(%q) code = %s, want %s", tt.engine, errors.GetCode(err), errors.ErrCodeInvalidEngine)
		}
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.Engine != DefaultEngine {
		t.Errorf("Engine should be %s, got %s", DefaultEngine, opts.Engine)
	}
	if opts.Width != DefaultWidth {
		t.Errorf("Width should be %f, got %f", DefaultWidth, opts.Width)
	}
	if opts.Height != DefaultHeight {
		t.Errorf("Height should be %f, got %f", DefaultHeight, opts.Height)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats should be [json], got %v", opts.Formats)
	}
}

func TestOptionsValidateForLayout(t *testing.T) {
	tests := map[string]Options{
		"bad engine":     {Engine: "grid"},
		"negative width": {Width: -1},
		"negative fixed": {FixedTopOffset: -64},
	}
	for name, opts := range tests {
		t.Run(name, func(t *testing.T) {
			if err := opts.ValidateForLayout(); err == nil {
				t.Error("ValidateForLayout() = nil, want error")
			}
		})
	}
}

func TestOptionsApplyDocument(t *testing.T) {
	doc := board()
	doc.Engine = document.EngineFlow
	doc.FixedTopOffset = 64
	doc.Viewport.Offset.Y = 30

	opts := Options{Width: 320}
	opts.ApplyDocument(doc)

	if opts.Engine != document.EngineFlow {
		t.Errorf("Engine = %q, want flow", opts.Engine)
	}
	if opts.Width != 320 {
		t.Errorf("Width = %v, want explicit 320 to win", opts.Width)
	}
	if opts.Height != 100 {
		t.Errorf("Height = %v, want 100 from document", opts.Height)
	}
	if opts.FixedTopOffset != 64 {
		t.Errorf("FixedTopOffset = %v, want 64", opts.FixedTopOffset)
	}
	if got := opts.Viewport().Offset.Y; got != 30 {
		t.Errorf("Viewport().Offset.Y = %v, want 30", got)
	}
	if !opts.IsFlow() {
		t.Error("IsFlow() = false, want true")
	}
}

func TestArtifactKeyOptsIgnoresOffsetWithoutSticky(t *testing.T) {
	a := Options{OffsetY: 10}
	b := Options{OffsetY: 20}
	if a.ArtifactKeyOpts(FormatSVG) != b.ArtifactKeyOpts(FormatSVG) {
		t.Error("offset should not change the key of a non-sticky artifact")
	}
	a.Sticky, b.Sticky = true, true
	if a.ArtifactKeyOpts(FormatSVG) == b.ArtifactKeyOpts(FormatSVG) {
		t.Error("offset should change the key of a sticky artifact")
	}
}

func TestGenerateLayoutWaterfall(t *testing.T) {
	opts := Options{}
	opts.ApplyDocument(board())
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}

	res, err := GenerateLayout(board(), opts)
	if err != nil {
		t.Fatalf("GenerateLayout() error = %v", err)
	}
	want := []geom.Rect{
		geom.NewRect(0, 40, 100, 100),
		geom.NewRect(100, 40, 100, 50),
		geom.NewRect(100, 90, 100, 60),
	}
	for i, w := range want {
		if got := res.Sections[0].Items[i].Frame; got != w {
			t.Errorf("item %d = %v, want %v", i, got, w)
		}
	}
	if res.ContentHeight != 150 {
		t.Errorf("ContentHeight = %v, want 150", res.ContentHeight)
	}
}

func TestGenerateLayoutWidthOverride(t *testing.T) {
	opts := Options{Width: 400}
	opts.ApplyDocument(board())
	opts.SetLayoutDefaults()

	res, err := GenerateLayout(board(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Sections[0].Items[1].Frame; got != geom.NewRect(200, 40, 200, 50) {
		t.Errorf("item 1 = %v, want derived width from the 400pt viewport", got)
	}
}

func TestGenerateLayoutFlow(t *testing.T) {
	doc := &document.Document{
		Engine:   document.EngineFlow,
		Viewport: layout.Viewport{Width: 200},
		Flow: &document.Flow{
			Config:  flow.Config{Columns: 2},
			Heights: []float64{10, 20, 30},
		},
	}
	opts := Options{}
	opts.ApplyDocument(doc)
	opts.SetLayoutDefaults()

	res, err := GenerateLayout(doc, opts)
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Sections[0].Items[2].Frame; got != geom.NewRect(0, 10, 100, 30) {
		t.Errorf("item 2 = %v, want (0,10,100,30)", got)
	}
	if res.ContentHeight != 40 {
		t.Errorf("ContentHeight = %v, want 40", res.ContentHeight)
	}
}

func TestGenerateLayoutNilDocument(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()
	_, err := GenerateLayout(nil, opts)
	if !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("GenerateLayout(nil) error = %v, want INVALID_DOCUMENT", err)
	}
}

func TestApplySticky(t *testing.T) {
	opts := Options{Sticky: true, OffsetY: 60}
	opts.ApplyDocument(board())
	opts.SetLayoutDefaults()

	res, err := GenerateLayout(board(), opts)
	if err != nil {
		t.Fatal(err)
	}
	adjusted := ApplySticky(res, opts)

	var header *layout.Attributes
	for i := range adjusted {
		if adjusted[i].IsHeader() {
			header = &adjusted[i]
		}
	}
	if header == nil {
		t.Fatal("header not injected into the visible entries")
	}
	if header.Frame.Y != 60 || header.ZIndex != sticky.ZIndex {
		t.Errorf("header = %+v, want pinned at y=60", *header)
	}
	if got := CountPinned(adjusted); got != 1 {
		t.Errorf("CountPinned() = %d, want 1", got)
	}
	if res.Sections[0].Header.Frame.Y != 0 {
		t.Error("overlay modified the layout table")
	}
}

func TestRender(t *testing.T) {
	opts := Options{Formats: []string{FormatJSON, FormatSVG}, Labels: true}
	opts.ApplyDocument(board())
	opts.SetLayoutDefaults()

	res, err := GenerateLayout(board(), opts)
	if err != nil {
		t.Fatal(err)
	}
	artifacts, err := Render(res, nil, "board", opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !json.Valid(artifacts[FormatJSON]) {
		t.Errorf("json artifact is not valid JSON: %s", artifacts[FormatJSON])
	}
	if !strings.Contains(string(artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact missing <svg> element")
	}

	if _, err := Render(res, nil, "", Options{Formats: []string{"png"}}); err == nil {
		t.Error("Render() with unknown format should fail")
	}
}

func TestHashDocument(t *testing.T) {
	a, err := HashDocument(board())
	if err != nil {
		t.Fatal(err)
	}
	b, _ := HashDocument(board())
	if a != b {
		t.Error("equal documents should hash the same")
	}
	changed := board()
	changed.Sections[0].Heights[0] = 101
	c, _ := HashDocument(changed)
	if a == c {
		t.Error("different documents should hash differently")
	}
}

func TestParseDocument(t *testing.T) {
	data := []byte(`{"viewport":{"width":200},"sections":[{"columns":2,"heights":[10]}]}`)
	doc, err := ParseDocument(data, document.FormatJSON)
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	if doc.ItemCount() != 1 {
		t.Errorf("ItemCount() = %d, want 1", doc.ItemCount())
	}
}

func TestRunnerExecuteCaches(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()
	ctx := context.Background()
	opts := Options{Formats: []string{FormatJSON, FormatSVG}, Sticky: true, OffsetY: 60}

	first, err := runner.Execute(ctx, board(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v, want misses", first.CacheInfo)
	}
	if first.Stats.Items != 3 || first.Stats.Pinned != 1 {
		t.Errorf("Stats = %+v, want 3 items and 1 pinned header", first.Stats)
	}

	second, err := runner.Execute(ctx, board(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", second.CacheInfo)
	}
	if string(second.Artifacts[FormatSVG]) != string(first.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}

	opts.Refresh = true
	third, err := runner.Execute(ctx, board(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh CacheInfo = %+v, want misses", third.CacheInfo)
	}
}

func TestRunnerExecuteInvalidOptions(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, err := runner.Execute(context.Background(), board(), Options{Formats: []string{"pdf"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Execute() error = %v, want INVALID_FORMAT", err)
	}
}
