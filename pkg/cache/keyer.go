package cache

// LayoutKeyOpts are the options that change a computed layout.
type LayoutKeyOpts struct {
	Engine         string  `json:"engine"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	InsetLeft      float64 `json:"inset_left"`
	InsetRight     float64 `json:"inset_right"`
	FixedTopOffset float64 `json:"fixed_top_offset"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format  string  `json:"format"`
	Labels  bool    `json:"labels"`
	Sticky  bool    `json:"sticky"`
	OffsetY float64 `json:"offset_y"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key of a layout computed from a document with the
	// given content hash.
	LayoutKey(docHash string, opts LayoutKeyOpts) string
	// ArtifactKey returns the key of an artifact rendered from a layout with
	// the given content hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the options into a fixed-length key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
