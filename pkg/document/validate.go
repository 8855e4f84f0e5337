package document

import (
	"fmt"

	"github.com/matzehuels/pinboard/pkg/errors"
)

// Limits enforced by [Document.Validate].
const (
	MaxColumns  = 64
	MaxSections = 1024
	MaxItems    = 100_000
)

// Validate checks a document before any layout runs. The layout engines trust
// their input, so this is where negative, NaN and infinite values are
// rejected. Errors carry [errors.ErrCodeInvalidDocument] or
// [errors.ErrCodeInvalidEngine].
func (d *Document) Validate() error {
	switch d.EngineName() {
	case EngineWaterfall, EngineFlow:
	default:
		return errors.New(errors.ErrCodeInvalidEngine, "unknown engine %q (want %s or %s)", d.Engine, EngineWaterfall, EngineFlow)
	}

	if err := check(errors.ValidateLength("viewport width", d.Viewport.Width)); err != nil {
		return err
	}
	if err := check(errors.ValidateLength("viewport height", d.Viewport.Height)); err != nil {
		return err
	}
	if err := checkInsets("viewport content inset", d.Viewport.ContentInset.Top, d.Viewport.ContentInset.Left,
		d.Viewport.ContentInset.Bottom, d.Viewport.ContentInset.Right); err != nil {
		return err
	}
	if err := check(errors.ValidateLength("fixed top offset", d.FixedTopOffset)); err != nil {
		return err
	}

	if d.EngineName() == EngineFlow {
		return d.validateFlow()
	}

	if err := check(errors.ValidateCount("sections", len(d.Sections), MaxSections)); err != nil {
		return err
	}
	total := 0
	for i, s := range d.Sections {
		if err := validateSection(i, s); err != nil {
			return err
		}
		total += len(s.Items) + len(s.Heights)
	}
	return check(errors.ValidateCount("items", total, MaxItems))
}

func (d *Document) validateFlow() error {
	if d.Flow == nil {
		return errors.New(errors.ErrCodeInvalidDocument, "flow engine requires a flow table")
	}
	if len(d.Sections) > 0 {
		return errors.New(errors.ErrCodeInvalidDocument, "flow documents cannot have sections")
	}
	if err := check(errors.ValidateCount("flow columns", d.Flow.Columns, MaxColumns)); err != nil {
		return err
	}
	if err := check(errors.ValidateLength("flow cell padding", d.Flow.CellPadding)); err != nil {
		return err
	}
	if err := check(errors.ValidateCount("flow items", len(d.Flow.Heights), MaxItems)); err != nil {
		return err
	}
	for i, h := range d.Flow.Heights {
		if err := check(errors.ValidateLength(fmt.Sprintf("flow item %d height", i), h)); err != nil {
			return err
		}
	}
	return nil
}

func validateSection(i int, s Section) error {
	name := fmt.Sprintf("section %d", i)
	if err := check(errors.ValidateCount(name+" columns", s.Columns, MaxColumns)); err != nil {
		return err
	}
	lengths := []struct {
		what string
		v    float64
	}{
		{"line spacing", s.LineSpacing},
		{"interitem spacing", s.InteritemSpacing},
		{"header width", s.Header.Width},
		{"header height", s.Header.Height},
		{"footer width", s.Footer.Width},
		{"footer height", s.Footer.Height},
		{"item width", s.ItemWidth},
	}
	for _, l := range lengths {
		if err := check(errors.ValidateLength(name+" "+l.what, l.v)); err != nil {
			return err
		}
	}
	if err := checkInsets(name+" insets", s.Insets.Top, s.Insets.Left, s.Insets.Bottom, s.Insets.Right); err != nil {
		return err
	}
	for j, size := range s.Items {
		if err := check(errors.ValidateLength(fmt.Sprintf("%s item %d width", name, j), size.Width)); err != nil {
			return err
		}
		if err := check(errors.ValidateLength(fmt.Sprintf("%s item %d height", name, j), size.Height)); err != nil {
			return err
		}
	}
	for j, h := range s.Heights {
		if err := check(errors.ValidateLength(fmt.Sprintf("%s item %d height", name, len(s.Items)+j), h)); err != nil {
			return err
		}
	}
	return nil
}

func checkInsets(name string, sides ...float64) error {
	for _, v := range sides {
		if err := check(errors.ValidateLength(name, v)); err != nil {
			return err
		}
	}
	return nil
}

// check re-codes validator errors as document errors.
func check(err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(errors.ErrCodeInvalidDocument, err, "%s", errors.UserMessage(err))
}
