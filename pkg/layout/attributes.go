package layout

import (
	"fmt"

	"github.com/matzehuels/pinboard/pkg/geom"
)

// Kind identifies what a geometry entry represents.
type Kind int

const (
	KindCell Kind = iota
	KindHeader
	KindFooter
)

// String returns the lowercase name used in serialized layouts.
func (k Kind) String() string {
	switch k {
	case KindCell:
		return "cell"
	case KindHeader:
		return "header"
	case KindFooter:
		return "footer"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind is the inverse of [Kind.String].
func ParseKind(s string) (Kind, error) {
	switch s {
	case "cell":
		return KindCell, nil
	case "header":
		return KindHeader, nil
	case "footer":
		return KindFooter, nil
	}
	return 0, fmt.Errorf("unknown kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Attributes is a single geometry entry: a cell, or a section's header or
// footer. Item is always 0 for headers and footers.
type Attributes struct {
	Kind    Kind      `json:"kind"`
	Section int       `json:"section"`
	Item    int       `json:"item"`
	Frame   geom.Rect `json:"frame"`
	ZIndex  int       `json:"z_index,omitempty"`
}

// IsCell reports whether the entry is an item cell.
func (a Attributes) IsCell() bool { return a.Kind == KindCell }

// IsHeader reports whether the entry is a section header.
func (a Attributes) IsHeader() bool { return a.Kind == KindHeader }

// IsFooter reports whether the entry is a section footer.
func (a Attributes) IsFooter() bool { return a.Kind == KindFooter }

// SectionGeometry holds the computed geometry of one section.
// Header and Footer are nil when the configured size was zero.
type SectionGeometry struct {
	Header       *Attributes  `json:"header,omitempty"`
	Footer       *Attributes  `json:"footer,omitempty"`
	Items        []Attributes `json:"items"`
	StickyHeader bool         `json:"sticky_header,omitempty"`
}
