package equivalency

type constError string

func (e constError) Error() string { return string(e) }

const (
	// ErrInvalidUnit is returned for a unit ToKg does not know.
	ErrInvalidUnit = constError("invalid carbon unit")

	// ErrNegativeValue is returned for negative totals.
	ErrNegativeValue = constError("negative carbon value")

	// ErrOverflow is returned when a value or result is not finite.
	ErrOverflow = constError("carbon value out of range")
)
