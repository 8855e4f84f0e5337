package sink

import (
	"encoding/json"

	"github.com/matzehuels/pinboard/pkg/errors"
	"github.com/matzehuels/pinboard/pkg/geom"
	"github.com/matzehuels/pinboard/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	name     string
	engine   string
	viewport *layout.Viewport
	sticky   []layout.Attributes
}

// WithJSONName records the document name in the output.
func WithJSONName(name string) JSONOption { return func(r *jsonRenderer) { r.name = name } }

// WithJSONEngine records which engine produced the layout.
func WithJSONEngine(engine string) JSONOption { return func(r *jsonRenderer) { r.engine = engine } }

// WithJSONSticky adds a viewport section holding the sticky-adjusted entries
// visible in v.
func WithJSONSticky(v layout.Viewport, adjusted []layout.Attributes) JSONOption {
	return func(r *jsonRenderer) { r.viewport = &v; r.sticky = adjusted }
}

type jsonOutput struct {
	Name     string        `json:"name,omitempty"`
	Engine   string        `json:"engine,omitempty"`
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Sections []jsonSection `json:"sections"`
	Entries  []jsonEntry   `json:"entries"`
	Viewport *jsonViewport `json:"viewport,omitempty"`
}

type jsonSection struct {
	Items  int  `json:"items"`
	Sticky bool `json:"sticky,omitempty"`
}

type jsonEntry struct {
	Kind    string  `json:"kind"`
	Section int     `json:"section"`
	Item    int     `json:"item"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Z       int     `json:"z,omitempty"`
}

type jsonViewport struct {
	X       float64     `json:"x"`
	Y       float64     `json:"y"`
	Width   float64     `json:"width"`
	Height  float64     `json:"height"`
	Entries []jsonEntry `json:"entries"`
}

// RenderJSON exports a layout as a pretty-printed JSON document. Entries are
// listed in table order: header, items, footer for each section.
//
// RenderJSON returns an error only if JSON marshaling fails. It is safe to
// call concurrently.
func RenderJSON(res layout.Result, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Name:     r.name,
		Engine:   r.engine,
		Width:    res.ContentWidth,
		Height:   res.ContentHeight,
		Sections: make([]jsonSection, len(res.Sections)),
		Entries:  buildJSONEntries(res.All()),
	}
	for i, s := range res.Sections {
		out.Sections[i] = jsonSection{Items: len(s.Items), Sticky: s.StickyHeader}
	}

	if r.viewport != nil {
		vis := r.viewport.VisibleRect()
		out.Viewport = &jsonViewport{
			X: vis.X, Y: vis.Y, Width: vis.Width, Height: vis.Height,
			Entries: buildJSONEntries(r.sticky),
		}
	}

	return json.MarshalIndent(out, "", "  ")
}

func buildJSONEntries(entries []layout.Attributes) []jsonEntry {
	out := make([]jsonEntry, 0, len(entries))
	for _, a := range entries {
		out = append(out, jsonEntry{
			Kind:    a.Kind.String(),
			Section: a.Section,
			Item:    a.Item,
			X:       a.Frame.X,
			Y:       a.Frame.Y,
			Width:   a.Frame.Width,
			Height:  a.Frame.Height,
			Z:       a.ZIndex,
		})
	}
	return out
}

// ParseJSON rebuilds a [layout.Result] from [RenderJSON] output. The viewport
// section, if any, is ignored.
func ParseJSON(data []byte) (layout.Result, error) {
	var in jsonOutput
	if err := json.Unmarshal(data, &in); err != nil {
		return layout.Result{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse layout json")
	}

	res := layout.Result{
		Sections:      make([]layout.SectionGeometry, len(in.Sections)),
		ContentWidth:  in.Width,
		ContentHeight: in.Height,
	}
	for i, s := range in.Sections {
		res.Sections[i] = layout.SectionGeometry{
			Items:        make([]layout.Attributes, 0, s.Items),
			StickyHeader: s.Sticky,
		}
	}

	for _, e := range in.Entries {
		kind, err := layout.ParseKind(e.Kind)
		if err != nil {
			return layout.Result{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse layout json")
		}
		if e.Section < 0 || e.Section >= len(res.Sections) {
			return layout.Result{}, errors.New(errors.ErrCodeInvalidFormat, "entry references section %d of %d", e.Section, len(res.Sections))
		}
		a := layout.Attributes{
			Kind:    kind,
			Section: e.Section,
			Item:    e.Item,
			Frame:   geom.NewRect(e.X, e.Y, e.Width, e.Height),
			ZIndex:  e.Z,
		}
		sg := &res.Sections[e.Section]
		switch kind {
		case layout.KindHeader:
			sg.Header = &a
		case layout.KindFooter:
			sg.Footer = &a
		default:
			if e.Item != len(sg.Items) {
				return layout.Result{}, errors.New(errors.ErrCodeInvalidFormat, "section %d: item %d out of order", e.Section, e.Item)
			}
			sg.Items = append(sg.Items, a)
		}
	}

	for i, s := range in.Sections {
		if got := len(res.Sections[i].Items); got != s.Items {
			return layout.Result{}, errors.New(errors.ErrCodeInvalidFormat, "section %d: want %d items, got %d", i, s.Items, got)
		}
	}
	return res, nil
}
