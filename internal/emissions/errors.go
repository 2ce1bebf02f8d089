package emissions

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrValidation indicates an activity input that cannot be used in a calculation.
// Calculate wraps it with the offending activity and reason.
const ErrValidation = constError("invalid emission input")

// Validation reasons carried by ErrValidation.
const (
	reasonNegative  = "must be non-negative"
	reasonNotFinite = "must be valid numbers"
)
