// Package pkg provides the core libraries for Pinboard grid layouts.
//
// # Overview
//
// Pinboard computes the geometry of scrolling collection views: waterfall
// ("Pinterest-style") grids where items of varying height are packed into
// columns, section headers that stick to the top of the viewport while their
// section scrolls past, and a simpler single-section flow grid. The pkg
// directory is organized into these areas:
//
//  1. [layout] - Geometry engines (waterfall, sticky overlay, flow)
//  2. [document] - Board documents that describe sections and items
//  3. [pipeline] - Orchestration (parse → layout → sticky → render)
//  4. [cache] - Result caching with file, Redis and null backends
//  5. [observability] - Hooks for metrics and tracing
//
// # Architecture
//
// The typical data flow through Pinboard:
//
//	Board document (JSON, YAML or TOML)
//	         ↓
//	    [document] package (decode + validate)
//	         ↓
//	    [layout] package (waterfall or flow geometry)
//	         ↓
//	    [layout/sticky] package (pin headers for a scroll offset)
//	         ↓
//	    [layout/sink] package (JSON or SVG output)
//
// # Quick Start
//
// Load a board and render it with pinned headers:
//
//	doc, _ := document.ReadFile("board.yaml")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, _ := runner.Execute(ctx, doc, pipeline.Options{
//	    Sticky:  true,
//	    OffsetY: 240,
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	os.WriteFile("board.svg", res.Artifacts[pipeline.FormatSVG], 0o644)
//
// Or drive the engines directly:
//
//	v := layout.Viewport{Width: 375, Height: 667, Offset: geom.Point{Y: 240}}
//	res := layout.Compute(doc, v)
//	pinned := sticky.New(res).Visible(v)
//
// # Main Packages
//
// [geom] - Points, sizes, rectangles and edge insets shared by every engine.
//
// [layout] - The waterfall engine. Items are packed shortest-column-first,
// sections stack vertically, and [layout.Result] answers rectangle and point
// queries.
//
// [layout/sticky] - Overlay that pins sticky section headers to the top of the
// viewport, pushes them up as the next section arrives, and injects headers
// for sections whose own header scrolled out of the query rectangle.
//
// [layout/flow] - Single-section round-robin grid with uniform item widths.
//
// [layout/sink] - JSON and SVG renderers for layout results.
//
// [errors] - Coded errors shared across the CLI and the HTTP server.
//
// [buildinfo] - Version information stamped at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./...                 # All tests
//	go test ./pkg/layout/...      # Specific package
//	go test -run Example ./pkg/...
//
// [layout]: https://pkg.go.dev/github.com/matzehuels/pinboard/pkg/layout
// [layout/sticky]: https://pkg.go.dev/github.com/matzehuels/pinboard/pkg/layout/sticky
// [layout/flow]: https://pkg.go.dev/github.com/matzehuels/pinboard/pkg/layout/flow
// [layout/sink]: https://pkg.go.dev/github.com/matzehuels/pinboard/pkg/layout/sink
// [document]: https://pkg.go.dev/github.com/matzehuels/pinboard/pkg/document
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/pinboard/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/pinboard/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/pinboard/pkg/observability
// [geom]: https://pkg.go.dev/github.com/matzehuels/pinboard/pkg/geom
// [errors]: https://pkg.go.dev/github.com/matzehuels/pinboard/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/pinboard/pkg/buildinfo
package pkg
