package engine

import (
	"encoding/json"
	"fmt"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Error kinds. Every CalcError unwraps to exactly one of these, so callers
// can branch with errors.Is.
var (
	// ErrNotFound covers absent vehicles, grid cells and manufacturing rows.
	ErrNotFound = constError("not found")

	// ErrMissingInput means a required vehicle field or argument is unset.
	ErrMissingInput = constError("missing input")

	// ErrInvalidPowertrain means the powertrain label is not handled.
	ErrInvalidPowertrain = constError("invalid powertrain")

	// ErrPreconditionFailed means break-even role checks did not hold.
	ErrPreconditionFailed = constError("precondition failed")
)

// ErrorKey is the field under which a CalcError's reason is serialized.
const ErrorKey = "error"

// CalcError is a calculation failure returned as a value. Reason is the
// human-readable message surfaced to callers verbatim.
type CalcError struct {
	Kind   error
	Reason string
}

func newCalcError(kind error, format string, args ...any) *CalcError {
	return &CalcError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

func (e *CalcError) Error() string { return e.Reason }

// Unwrap exposes the error kind.
func (e *CalcError) Unwrap() error { return e.Kind }

// MarshalJSON encodes the error as {"error": reason}.
func (e *CalcError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{ErrorKey: e.Reason})
}
