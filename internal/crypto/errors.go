package crypto

import "errors"

var (
	// ErrAuthentication is returned whenever an AEAD payload fails to verify:
	// tag mismatch, truncated ciphertext or malformed nonce. It deliberately
	// does not say which.
	ErrAuthentication = errors.New("authentication failed")

	// ErrKeyUnavailable is returned when the key vault no longer holds the key
	// material a payload was sealed under. Such payloads are permanently
	// undecryptable.
	ErrKeyUnavailable = errors.New("encryption key unavailable")

	// ErrInvalidKey is returned when a raw key is not 256 bits long.
	ErrInvalidKey = errors.New("invalid key length")
)
