package lock

import "errors"

var (
	// ErrInvalidInput is returned for a PIN that is not 4 to 8 digits or a
	// non-positive timeout.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTooManyAttempts is returned by ValidatePin when the attempt limiter
	// is enabled and exhausted.
	ErrTooManyAttempts = errors.New("too many pin attempts")
)
