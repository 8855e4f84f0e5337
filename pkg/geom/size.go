package geom

// Point is a position in content coordinates.
type Point struct {
	X float64 `json:"x" toml:"x" yaml:"x"`
	Y float64 `json:"y" toml:"y" yaml:"y"`
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width" toml:"width" yaml:"width"`
	Height float64 `json:"height" toml:"height" yaml:"height"`
}

// NewSize creates a Size.
func NewSize(width, height float64) Size {
	return Size{Width: width, Height: height}
}

// IsZero reports whether both dimensions are zero. A zero size marks an
// absent header or footer.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// HasArea reports whether both dimensions are strictly positive.
func (s Size) HasArea() bool {
	return s.Width > 0 && s.Height > 0
}
