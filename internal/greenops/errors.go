package greenops

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors, comparable with errors.Is().
var (
	// ErrInvalidUnit indicates an unrecognized carbon unit.
	ErrInvalidUnit = constError("invalid carbon unit")

	// ErrNegativeValue indicates a negative emission figure or distance.
	ErrNegativeValue = constError("negative value")

	// ErrCalculationOverflow indicates an Inf or NaN input or result.
	ErrCalculationOverflow = constError("calculation overflow")
)
