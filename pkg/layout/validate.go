package layout

import (
	"fmt"

	"github.com/matzehuels/pinboard/pkg/errors"
)

// Validate reports the first degenerate frame in the table. Compute never
// clamps provider values, so hosts that take sizes from untrusted sources call
// Validate at the boundary. The returned error carries
// [errors.ErrCodeInvalidGeometry].
func (r Result) Validate() error {
	if err := errors.ValidateLength("content width", r.ContentWidth); err != nil {
		return err
	}
	if err := errors.ValidateLength("content height", r.ContentHeight); err != nil {
		return err
	}
	for _, a := range r.All() {
		if err := validateFrame(a); err != nil {
			return err
		}
	}
	return nil
}

func validateFrame(a Attributes) error {
	name := fmt.Sprintf("section %d %s", a.Section, a.Kind)
	if a.IsCell() {
		name = fmt.Sprintf("section %d item %d", a.Section, a.Item)
	}
	f := a.Frame
	if err := errors.ValidateCoordinate(name+" x", f.X); err != nil {
		return err
	}
	if err := errors.ValidateCoordinate(name+" y", f.Y); err != nil {
		return err
	}
	if err := errors.ValidateLength(name+" width", f.Width); err != nil {
		return err
	}
	return errors.ValidateLength(name+" height", f.Height)
}
