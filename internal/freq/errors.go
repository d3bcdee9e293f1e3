package freq

import "errors"

var (
	// ErrValidation indicates an input path that cannot be processed.
	ErrValidation = errors.New("freq: validation failed")

	// ErrPreambleNotFound indicates a preamble skip was requested but the
	// text carries no marker.
	ErrPreambleNotFound = errors.New("freq: preamble marker not found")

	// ErrDivisionByZero indicates frequencies were requested for a text
	// without a single alphabet letter.
	ErrDivisionByZero = errors.New("freq: division by zero (no alphabet letters)")
)
