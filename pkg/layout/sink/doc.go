// Package sink renders computed layouts to output formats.
//
// # Overview
//
// A "sink" turns a [layout.Result] into bytes:
//
//   - JSON: the geometry table as a flat entry list, for hosts and caches
//   - SVG: a wireframe of every header, cell and footer, for inspection
//
// Both renderers take functional options and never modify the result.
//
// # JSON Output
//
// [RenderJSON] writes content size, entry frames and, with [WithJSONSticky],
// the sticky-adjusted entries for one viewport. [ParseJSON] reads the output
// back into a [layout.Result]:
//
//	data, _ := sink.RenderJSON(res, sink.WithJSONEngine("waterfall"))
//	again, _ := sink.ParseJSON(data)
//
// # SVG Output
//
// [RenderSVG] draws one rectangle per entry. Headers, footers and cells get
// distinct classes so the output can be restyled:
//
//	svg := sink.RenderSVG(res,
//	    sink.WithViewport(v),
//	    sink.WithSticky(adjusted),
//	    sink.WithLabels(),
//	)
//
// [layout.Result]: github.com/matzehuels/pinboard/pkg/layout.Result
package sink
