package service

import "errors"

var (
	// ErrVaultLocked is returned by every secret-bearing operation while the
	// vault is not unlocked.
	ErrVaultLocked = errors.New("vault is locked")

	// ErrInvalidInput is returned when a credential, category or setting
	// fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned for an unknown credential or category id.
	ErrNotFound = errors.New("not found")

	// ErrClipboardUnavailable is returned when the system clipboard cannot
	// be used.
	ErrClipboardUnavailable = errors.New("clipboard is unavailable")
)
