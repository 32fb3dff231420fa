package paint

import "errors"

// Common errors.
var (
	// ErrApplicatorReleased is the panic value for Apply after Release.
	ErrApplicatorReleased = errors.New("paint: applicator used after release")

	// ErrInvalidOptions is returned for graphics options out of range.
	ErrInvalidOptions = errors.New("paint: invalid graphics options")

	// ErrNilTarget is returned when an operation has no target buffer.
	ErrNilTarget = errors.New("paint: nil target buffer")

	// ErrNilBrush is returned when a fill has no brush.
	ErrNilBrush = errors.New("paint: nil brush")
)
