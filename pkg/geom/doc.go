// Package geom provides the float geometry primitives shared by the layout
// engines: points, sizes, rectangles and edge insets.
//
// All coordinates use a top-left origin with Y growing downward, matching the
// scroll-content coordinate space of the hosts that consume pinboard layouts.
// Values are plain structs and every operation returns a new value, so
// geometry can be copied freely between layout tables without aliasing.
package geom
