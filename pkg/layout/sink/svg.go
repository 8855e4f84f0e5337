package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/pinboard/pkg/geom"
	"github.com/matzehuels/pinboard/pkg/layout"
)

const wireframeCSS = `
    .cell { fill: #e8eef7; stroke: #5b7bb2; stroke-width: 1; }
    .header { fill: #fde9c9; stroke: #c98a1b; stroke-width: 1; }
    .footer { fill: #e3f2e1; stroke: #4f8a46; stroke-width: 1; }
    .pinned { fill: #f9c46b; stroke: #8a5a00; stroke-width: 2; }
    .viewport { fill: none; stroke: #d7263d; stroke-width: 2; stroke-dasharray: 6 4; }
    .label { font: 10px sans-serif; fill: #333; }`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels   bool
	title    string
	viewport *layout.Viewport
	sticky   []layout.Attributes
}

// WithLabels prints section/item labels inside every entry.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithTitle sets the SVG title element.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithViewport outlines the viewport's visible rectangle.
func WithViewport(v layout.Viewport) SVGOption {
	return func(r *svgRenderer) { r.viewport = &v }
}

// WithSticky draws sticky-adjusted headers on top of the base layout.
func WithSticky(adjusted []layout.Attributes) SVGOption {
	return func(r *svgRenderer) { r.sticky = adjusted }
}

// RenderSVG draws every entry of res as a rectangle. The canvas covers the
// content size, grown to include the viewport outline if one is set.
func RenderSVG(res layout.Result, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	canvas := geom.NewRect(0, 0, res.ContentWidth, res.ContentHeight)
	if r.viewport != nil {
		canvas = canvas.Union(r.viewport.VisibleRect())
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		canvas.X, canvas.Y, canvas.Width, canvas.Height, canvas.Width, canvas.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(r.title))
	}
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", wireframeCSS)

	for _, a := range res.All() {
		renderEntry(&buf, entryID(a), a.Kind.String(), a, r.labels)
	}
	for _, a := range r.sticky {
		if a.IsHeader() && a.ZIndex > 0 {
			renderEntry(&buf, "pinned-"+entryID(a), "pinned", a, r.labels)
		}
	}
	if r.viewport != nil {
		vis := r.viewport.VisibleRect()
		fmt.Fprintf(&buf, `  <rect class="viewport" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n",
			vis.X, vis.Y, vis.Width, vis.Height)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderEntry(buf *bytes.Buffer, id, class string, a layout.Attributes, label bool) {
	f := a.Frame
	fmt.Fprintf(buf, `  <rect id="%s" class="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n",
		id, class, f.X, f.Y, f.Width, f.Height)
	if label && f.Width > 0 && f.Height > 0 {
		fmt.Fprintf(buf, `  <text class="label" x="%.1f" y="%.1f">%s</text>`+"\n",
			f.X+4, f.Y+12, entryLabel(a))
	}
}

func entryID(a layout.Attributes) string {
	if a.IsCell() {
		return fmt.Sprintf("cell-%d-%d", a.Section, a.Item)
	}
	return fmt.Sprintf("%s-%d", a.Kind, a.Section)
}

func entryLabel(a layout.Attributes) string {
	if a.IsCell() {
		return fmt.Sprintf("%d.%d", a.Section, a.Item)
	}
	return fmt.Sprintf("%s %d", a.Kind, a.Section)
}
