package document

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/pinboard/pkg/errors"
	"github.com/matzehuels/pinboard/pkg/geom"
	"github.com/matzehuels/pinboard/pkg/layout"
)

const feedTOML = `
name = "feed"

[viewport]
width = 375
height = 667

[[sections]]
columns = 2
line_spacing = 10
interitem_spacing = 15
sticky = true
header = { width = 375, height = 44 }
insets = { top = 0, left = 10, bottom = 0, right = 10 }
heights = [120, 80, 200]

[[sections]]
columns = 1
items = [{ width = 375, height = 60 }]
heights = [30]
`

const feedYAML = `
name: feed
viewport:
  width: 375
  height: 667
sections:
  - columns: 2
    line_spacing: 10
    interitem_spacing: 15
    sticky: true
    header: {width: 375, height: 44}
    insets: {left: 10, right: 10}
    heights: [120, 80, 200]
  - columns: 1
    items:
      - {width: 375, height: 60}
    heights: [30]
`

const feedJSON = `{
  "name": "feed",
  "viewport": {"width": 375, "height": 667},
  "sections": [
    {
      "columns": 2,
      "line_spacing": 10,
      "interitem_spacing": 15,
      "sticky": true,
      "header": {"width": 375, "height": 44},
      "insets": {"left": 10, "right": 10},
      "heights": [120, 80, 200]
    },
    {
      "columns": 1,
      "items": [{"width": 375, "height": 60}],
      "heights": [30]
    }
  ]
}`

func TestDecodeFormats(t *testing.T) {
	tests := map[Format]string{
		FormatTOML: feedTOML,
		FormatYAML: feedYAML,
		FormatJSON: feedJSON,
	}

	for format, src := range tests {
		t.Run(string(format), func(t *testing.T) {
			doc, err := Decode(strings.NewReader(src), format)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}

			if doc.EngineName() != EngineWaterfall {
				t.Errorf("EngineName() = %q, want %q", doc.EngineName(), EngineWaterfall)
			}
			if doc.NumberOfSections() != 2 {
				t.Fatalf("NumberOfSections() = %d, want 2", doc.NumberOfSections())
			}
			if got := doc.ItemCount(); got != 5 {
				t.Errorf("ItemCount() = %d, want 5", got)
			}

			cfg := doc.SectionConfig(0)
			if cfg.Columns != 2 || !cfg.StickyHeader || cfg.HeaderSize != geom.NewSize(375, 44) {
				t.Errorf("SectionConfig(0) = %+v", cfg)
			}

			// (375 - 20 - 15) / 2
			if got := doc.SizeForItem(0, 1); got != geom.NewSize(170, 80) {
				t.Errorf("SizeForItem(0, 1) = %+v, want {170 80}", got)
			}
			if got := doc.SizeForItem(1, 0); got != geom.NewSize(375, 60) {
				t.Errorf("SizeForItem(1, 0) = %+v, want {375 60}", got)
			}
			if got := doc.SizeForItem(1, 1); got != geom.NewSize(375, 30) {
				t.Errorf("SizeForItem(1, 1) = %+v, want {375 30}", got)
			}
		})
	}
}

func TestDocumentAsProvider(t *testing.T) {
	doc, err := Decode(strings.NewReader(feedTOML), FormatTOML)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	res := layout.Compute(doc, doc.Viewport)
	if got := res.ItemCount(); got != 5 {
		t.Errorf("ItemCount() = %d, want 5", got)
	}
	second, _ := res.ItemAttributes(0, 1)
	if second.Frame.X != 195 {
		t.Errorf("item 1 x = %v, want 195", second.Frame.X)
	}
	if !res.HeaderIsSticky(0) {
		t.Error("HeaderIsSticky(0) = false")
	}
}

func TestDecodeFlow(t *testing.T) {
	src := `
engine = "flow"
[viewport]
width = 300
[flow]
columns = 3
cell_padding = 4
heights = [10, 20, 30, 40]
`
	doc, err := Decode(strings.NewReader(src), FormatTOML)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if doc.FlowItems() != 4 {
		t.Errorf("FlowItems() = %d, want 4", doc.FlowItems())
	}
	if cfg := doc.FlowConfig(); cfg.Columns != 3 || cfg.CellPadding != 4 {
		t.Errorf("FlowConfig() = %+v", cfg)
	}
	if got := doc.HeightForItem(2, 92); got != 30 {
		t.Errorf("HeightForItem(2) = %v, want 30", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		code errors.Code
	}{
		{
			name: "unknown engine",
			doc:  Document{Engine: "masonry", Viewport: layout.Viewport{Width: 100}},
			code: errors.ErrCodeInvalidEngine,
		},
		{
			name: "negative columns",
			doc:  Document{Viewport: layout.Viewport{Width: 100}, Sections: []Section{{Columns: -1}}},
			code: errors.ErrCodeInvalidDocument,
		},
		{
			name: "too many columns",
			doc:  Document{Viewport: layout.Viewport{Width: 100}, Sections: []Section{{Columns: MaxColumns + 1}}},
			code: errors.ErrCodeInvalidDocument,
		},
		{
			name: "NaN height",
			doc:  Document{Viewport: layout.Viewport{Width: 100}, Sections: []Section{{Columns: 1, Heights: []float64{math.NaN()}}}},
			code: errors.ErrCodeInvalidDocument,
		},
		{
			name: "negative item width",
			doc:  Document{Viewport: layout.Viewport{Width: 100}, Sections: []Section{{Columns: 1, Items: []geom.Size{{Width: -5, Height: 10}}}}},
			code: errors.ErrCodeInvalidDocument,
		},
		{
			name: "negative viewport",
			doc:  Document{Viewport: layout.Viewport{Width: -1}},
			code: errors.ErrCodeInvalidDocument,
		},
		{
			name: "flow without table",
			doc:  Document{Engine: EngineFlow, Viewport: layout.Viewport{Width: 100}},
			code: errors.ErrCodeInvalidDocument,
		},
		{
			name: "zero columns is allowed",
			doc:  Document{Viewport: layout.Viewport{Width: 100}, Sections: []Section{{Heights: []float64{10}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	tests := map[Format]string{
		FormatJSON: `{"viewport": {"width": 1}, "colums": 2}`,
		FormatTOML: "colums = 2\n[viewport]\nwidth = 1\n",
		FormatYAML: "viewport: {width: 1}\ncolums: 2\n",
	}
	for format, src := range tests {
		if _, err := Decode(strings.NewReader(src), format); !errors.Is(err, errors.ErrCodeInvalidDocument) {
			t.Errorf("%s: Decode() = %v, want %s", format, err, errors.ErrCodeInvalidDocument)
		}
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "home.yml")
	if err := os.WriteFile(path, []byte(feedYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if doc.Name != "feed" {
		t.Errorf("Name = %q, want %q", doc.Name, "feed")
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadFile(missing) = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
	if _, err := ReadFile(filepath.Join(dir, "feed.txt")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ReadFile(.txt) = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestReadFileNamesFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "explore.json")
	if err := os.WriteFile(path, []byte(`{"viewport": {"width": 320}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if doc.Name != "explore" {
		t.Errorf("Name = %q, want %q", doc.Name, "explore")
	}
}

func TestMarshalDecodes(t *testing.T) {
	doc, err := Decode(strings.NewReader(feedJSON), FormatJSON)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	for _, format := range []Format{FormatJSON, FormatTOML, FormatYAML} {
		data, err := Marshal(doc, format)
		if err != nil {
			t.Fatalf("Marshal(%s) error: %v", format, err)
		}
		again, err := Decode(strings.NewReader(string(data)), format)
		if err != nil {
			t.Fatalf("Decode(Marshal(%s)) error: %v\n%s", format, err, data)
		}
		if again.ItemCount() != doc.ItemCount() {
			t.Errorf("%s: ItemCount() = %d, want %d", format, again.ItemCount(), doc.ItemCount())
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.json":    FormatJSON,
		"a.TOML":    FormatTOML,
		"a.yaml":    FormatYAML,
		"dir/a.yml": FormatYAML,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Errorf("FormatFromPath(%q) = %q, %v, want %q", path, got, err, want)
		}
	}
}
