package models

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// NonceSize is the AES-GCM nonce length used for every payload (96 bits).
const NonceSize = 12

// ErrMalformedPayload is returned by [DecodeEncryptedPayload] when either
// text column is not valid base64.
var ErrMalformedPayload = errors.New("malformed encrypted payload")

// EncryptedPayload is an AEAD ciphertext together with the nonce it was
// sealed under. Ciphertext already includes the 128-bit authentication tag.
type EncryptedPayload struct {
	Ciphertext []byte
	Nonce      []byte
	// KeyID is the key generation the payload was sealed under. Empty for
	// payloads written before key ids were recorded.
	KeyID string
}

// Encode returns the text form stored in the record store and in backups.
// KeyID is stored separately.
func (p EncryptedPayload) Encode() (cipherText, nonce string) {
	return base64.StdEncoding.EncodeToString(p.Ciphertext), base64.StdEncoding.EncodeToString(p.Nonce)
}

// DecodeEncryptedPayload is the inverse of [EncryptedPayload.Encode].
func DecodeEncryptedPayload(cipherText, nonce string) (EncryptedPayload, error) {
	ct, err := base64.StdEncoding.DecodeString(cipherText)
	if err != nil {
		return EncryptedPayload{}, fmt.Errorf("%w: ciphertext: %w", ErrMalformedPayload, err)
	}
	n, err := base64.StdEncoding.DecodeString(nonce)
	if err != nil {
		return EncryptedPayload{}, fmt.Errorf("%w: nonce: %w", ErrMalformedPayload, err)
	}

	return EncryptedPayload{Ciphertext: ct, Nonce: n}, nil
}
