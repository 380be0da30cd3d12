package crypto

import "github.com/MKhiriev/go-pass-guard/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/key_vault_mock.go -package=mock

// KeyHandle is an opaque reference to a symmetric key held inside a
// [KeyVault]. It carries no key material; holding a handle only allows
// asking the vault to encrypt or decrypt on the caller's behalf.
type KeyHandle struct {
	// Alias is the name the key was requested under.
	Alias string
	// ID identifies the concrete key generation behind Alias. A handle whose
	// ID no longer matches the vault's key for Alias refers to discarded
	// key material.
	ID string
}

// KeyVault is the platform key vault boundary. Implementations generate and
// store non-extractable 256-bit keys and never return raw key bytes.
type KeyVault interface {
	// GetOrCreateKey returns the handle for alias, generating and storing a
	// fresh key on first use.
	GetOrCreateKey(alias string) (KeyHandle, error)

	// GetKey returns the handle for alias without generating anything. It
	// returns [ErrKeyUnavailable] when no key is stored under alias.
	GetKey(alias string) (KeyHandle, error)

	// EncryptWith seals plaintext under the key behind handle using the given
	// 96-bit nonce. The result includes the 128-bit authentication tag.
	EncryptWith(handle KeyHandle, plaintext, nonce []byte) ([]byte, error)

	// DecryptWith opens ciphertext sealed by EncryptWith. It returns
	// [ErrKeyUnavailable] when the key behind handle has been discarded and
	// [ErrAuthentication] when the ciphertext does not verify.
	DecryptWith(handle KeyHandle, ciphertext, nonce []byte) ([]byte, error)
}

// FieldCrypto encrypts and decrypts individual text fields of a credential.
type FieldCrypto interface {
	Encrypt(text string) (models.EncryptedPayload, error)
	Decrypt(payload models.EncryptedPayload) (string, error)
}
