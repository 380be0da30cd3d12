// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/MKhiriev/go-pass-guard/models"
)

// KeySize is the symmetric key length accepted by [SecretBox] (AES-256).
const KeySize = 32

// SecretBox is a stateless AES-256-GCM wrapper. Every Encrypt call draws a
// fresh random 96-bit nonce; the 128-bit tag is appended to the ciphertext.
type SecretBox struct {
	random io.Reader
}

// NewSecretBox returns a [SecretBox] reading nonces from the OS CSPRNG.
func NewSecretBox() *SecretBox {
	return &SecretBox{random: rand.Reader}
}

// Encrypt seals plaintext under key with a random nonce.
func (b *SecretBox) Encrypt(key, plaintext []byte) (models.EncryptedPayload, error) {
	nonce, err := b.NewNonce()
	if err != nil {
		return models.EncryptedPayload{}, err
	}

	ciphertext, err := b.Seal(key, nonce, plaintext)
	if err != nil {
		return models.EncryptedPayload{}, err
	}

	return models.EncryptedPayload{Ciphertext: ciphertext, Nonce: nonce}, nil
}

// Decrypt opens a payload produced by [SecretBox.Encrypt]. Any failure other
// than a bad key length is reported as [ErrAuthentication].
func (b *SecretBox) Decrypt(key []byte, payload models.EncryptedPayload) ([]byte, error) {
	return b.Open(key, payload.Nonce, payload.Ciphertext)
}

// NewNonce returns 12 random bytes.
func (b *SecretBox) NewNonce() ([]byte, error) {
	nonce := make([]byte, models.NonceSize)
	if _, err := io.ReadFull(b.random, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return nonce, nil
}

// Seal encrypts plaintext with the caller-supplied nonce. The caller is
// responsible for never reusing a nonce under the same key.
func (b *SecretBox) Seal(key, nonce, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, fmt.Errorf("nonce must be %d bytes, got %d", gcm.NonceSize(), len(nonce))
	}

	return gcm.Seal(nil, nonce, plaintext, nil), nil
}

// Open verifies and decrypts ciphertext. No partial plaintext is ever
// returned.
func (b *SecretBox) Open(key, nonce, ciphertext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	// gcm.Open panics on a wrong nonce length.
	if len(nonce) != gcm.NonceSize() || len(ciphertext) < gcm.Overhead() {
		return nil, ErrAuthentication
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthentication
	}

	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKey, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}
