// Package layout computes waterfall ("Pinterest-style") grid geometry.
//
// A layout pass takes per-section configuration and per-item sizes from a
// [Provider] and produces a [Result]: one [SectionGeometry] per section with
// the frames of its header, items and footer, plus the total content extent.
//
// # Packing
//
// Items are packed shortest-column-first: each item goes into the column whose
// running bottom is smallest, ties going to the lowest column index. Sections
// stack vertically; a section's header sits above its columns and its footer
// below the tallest column.
//
// # Queries
//
// Both [Result] and the stateful [Layout] engine answer the queries a scrolling
// host needs: [Result.AttributesInRect] for everything visible in a rectangle
// and point lookups for single items, headers and footers. Lookups outside the
// table return false instead of failing.
//
// Sibling packages build on these types: sticky pins section headers to the
// top of a scrolled viewport, flow provides a single-section round-robin
// variant, and sink renders results as JSON or SVG.
//
// # Example
//
//	var l layout.Layout
//	l.Prepare(provider, layout.Viewport{Width: 375})
//	for _, a := range l.AttributesInRect(geom.NewRect(0, 0, 375, 667)) {
//	    fmt.Println(a.Kind, a.Section, a.Item, a.Frame)
//	}
package layout
