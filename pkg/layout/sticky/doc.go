// Package sticky pins section headers to the top of a scrolled viewport.
//
// The overlay runs after a layout pass and never changes the pass's table. It
// takes the entries a host is about to draw for a visible rectangle and
// returns an adjusted copy:
//
//   - Sections that have visible cells but whose header scrolled out of the
//     rectangle get their stored header injected back, if it is sticky and has
//     a non-empty frame.
//   - Every sticky header is shifted down so it stays at the top of the
//     visible area, then clamped so its bottom never passes the top of the next
//     section's header. This produces the push-off effect when the next
//     section arrives.
//   - Pinned headers are raised to [ZIndex] so they draw above cells.
//
// Because the adjustment depends on the scroll offset, hosts recompute it on
// every offset change; [Layout.ShouldInvalidateForBoundsChange] always
// reports true.
package sticky
