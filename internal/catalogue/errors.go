package catalogue

import (
	"errors"
	"fmt"
)

// Error kinds reported by Load and Parse. Match them with errors.Is.
var (
	ErrCatalogueUnavailable    = errors.New("catalogue unavailable")
	ErrMalformedRecord         = errors.New("malformed record")
	ErrInvalidPeriod           = errors.New("invalid period")
	ErrDanglingParentReference = errors.New("dangling parent reference")
	ErrParentCycle             = errors.New("parent cycle")
)

// Guidance is shown to the operator when the catalogue cannot be opened.
const Guidance = `The catalogue is a plain text file: a body count followed by one record
per body (name r g b orbital_radius orbital_tilt orbital_period radius
axis_tilt rot_period parent_index). A sample ships in data/sys; copy it
next to the binary or pass --catalogue <path>.`

// LoadError describes why a catalogue was rejected.
type LoadError struct {
	Path   string // File path, empty when parsing a reader
	Kind   error  // One of the Err* kinds above
	Record int    // 0-based record index, -1 when not tied to a record
	Field  string // Offending field name, if any
	Err    error  // Underlying cause, may be nil
}

func (e *LoadError) Error() string {
	msg := e.Kind.Error()
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Record >= 0 {
		msg += fmt.Sprintf(" (record %d", e.Record)
		if e.Field != "" {
			msg += ", field " + e.Field
		}
		msg += ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *LoadError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func recordError(kind error, record int, field string, cause error) *LoadError {
	return &LoadError{Kind: kind, Record: record, Field: field, Err: cause}
}
