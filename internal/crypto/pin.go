// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length of PIN and backup salts (128 bits).
	SaltSize = 16

	// PinHashIterations is the fixed PBKDF2 iteration count for PIN hashes.
	// Changing it invalidates every stored PinCredential.
	PinHashIterations = 48000

	// PinHashSize is the PBKDF2 output length (256 bits).
	PinHashSize = 32
)

// GenerateSalt reads [SaltSize] random bytes from the OS CSPRNG.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// HashPin derives the stored PIN hash: PBKDF2-HMAC-SHA256(pin, salt).
func HashPin(pin string, salt []byte) []byte {
	return pbkdf2.Key([]byte(pin), salt, PinHashIterations, PinHashSize, sha256.New)
}

// VerifyPin recomputes the hash of pin with salt and compares it to hash in
// constant time.
func VerifyPin(pin string, salt, hash []byte) bool {
	computed := HashPin(pin, salt)
	return subtle.ConstantTimeCompare(computed, hash) == 1
}
