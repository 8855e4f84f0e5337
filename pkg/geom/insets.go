package geom

// EdgeInsets holds distances for the four sides of a box.
type EdgeInsets struct {
	Top    float64 `json:"top,omitempty" toml:"top" yaml:"top,omitempty"`
	Left   float64 `json:"left,omitempty" toml:"left" yaml:"left,omitempty"`
	Bottom float64 `json:"bottom,omitempty" toml:"bottom" yaml:"bottom,omitempty"`
	Right  float64 `json:"right,omitempty" toml:"right" yaml:"right,omitempty"`
}

// InsetsAll creates EdgeInsets with the same value on all sides.
func InsetsAll(v float64) EdgeInsets {
	return EdgeInsets{Top: v, Left: v, Bottom: v, Right: v}
}

// NewInsets creates EdgeInsets in top, left, bottom, right order.
func NewInsets(top, left, bottom, right float64) EdgeInsets {
	return EdgeInsets{Top: top, Left: left, Bottom: bottom, Right: right}
}

// Horizontal returns the sum of Left and Right.
func (e EdgeInsets) Horizontal() float64 {
	return e.Left + e.Right
}

// Vertical returns the sum of Top and Bottom.
func (e EdgeInsets) Vertical() float64 {
	return e.Top + e.Bottom
}

// IsZero returns true if all edge values are zero.
func (e EdgeInsets) IsZero() bool {
	return e.Top == 0 && e.Left == 0 && e.Bottom == 0 && e.Right == 0
}
