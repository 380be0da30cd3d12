package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidPin = errors.New("pin must be 4 to 8 digits")

	ErrInvalidID         = errors.New("invalid record id")
	ErrDuplicateID       = errors.New("duplicate record id")
	ErrEmptyTitle        = errors.New("title is required")
	ErrEmptyName         = errors.New("name is required")
	ErrEmptyPassword     = errors.New("password is required")
	ErrInvalidPassword   = errors.New("invalid password payload")
	ErrInvalidNotes      = errors.New("invalid notes payload")
	ErrInvalidTimestamps = errors.New("invalid timestamps")
)
