package client

import "errors"

var (
	// ErrNoPin is returned when a command needs the vault unlocked but no
	// PIN has been set yet.
	ErrNoPin = errors.New("no PIN set, run `pin set` first")

	// ErrWrongPin is returned after every PIN prompt was answered wrongly.
	ErrWrongPin = errors.New("wrong PIN")

	// ErrConfirmationMismatch is returned when a repeated PIN or passphrase
	// does not match the first entry.
	ErrConfirmationMismatch = errors.New("entries do not match")
)
