package pipeline

import (
	"github.com/matzehuels/pinboard/pkg/document"
	"github.com/matzehuels/pinboard/pkg/errors"
	"github.com/matzehuels/pinboard/pkg/layout"
	"github.com/matzehuels/pinboard/pkg/layout/flow"
	"github.com/matzehuels/pinboard/pkg/layout/sticky"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout runs the engine selected by opts over doc.
//
// The document is laid out against the viewport in opts, so a width passed on
// the command line also changes the widths derived from a section's Heights
// shorthand. Flow results are converted to a single-section table.
func GenerateLayout(doc *document.Document, opts Options) (layout.Result, error) {
	if doc == nil {
		return layout.Result{}, errors.New(errors.ErrCodeInvalidDocument, "no document")
	}
	v := opts.Viewport()

	var res layout.Result
	switch opts.Engine {
	case document.EngineFlow:
		res = flow.Compute(doc.FlowItems(), doc, doc.FlowConfig(), v.Width).ToLayout()
	case document.EngineWaterfall:
		sized := *doc
		sized.Viewport = v
		res = layout.Compute(&sized, v)
	default:
		return layout.Result{}, ValidateEngine(opts.Engine)
	}

	if err := res.Validate(); err != nil {
		return layout.Result{}, err
	}
	return res, nil
}

// =============================================================================
// Sticky Overlay
// =============================================================================

// ApplySticky runs the sticky-header overlay over res for the viewport in
// opts and returns the visible entries with pinned headers adjusted.
func ApplySticky(res layout.Result, opts Options) []layout.Attributes {
	overlay := sticky.New(res, sticky.WithFixedTopOffset(opts.FixedTopOffset))
	return overlay.Visible(opts.Viewport())
}

// CountPinned returns the number of sticky headers the overlay raised above
// the cells.
func CountPinned(entries []layout.Attributes) int {
	n := 0
	for _, a := range entries {
		if a.IsHeader() && a.ZIndex == sticky.ZIndex {
			n++
		}
	}
	return n
}
