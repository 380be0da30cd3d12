// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/models"
)

// DefaultKeyAlias is the key vault alias used for credential fields.
const DefaultKeyAlias = "pass_guard_field_key"

// FieldCryptoManager encrypts credential fields (passwords, notes) under a
// key that stays inside the [KeyVault]. Only Encrypt provisions a key;
// Decrypt looks the key up and never creates one, so a lost key surfaces as
// [ErrKeyUnavailable] instead of a silent replacement. The key handle is
// cached and dropped once the vault reports the key as gone.
type FieldCryptoManager struct {
	vault  KeyVault
	box    *SecretBox
	alias  string
	logger *logger.Logger

	mu     sync.Mutex
	handle *KeyHandle
}

// NewFieldCryptoManager returns a manager using the key stored under alias.
func NewFieldCryptoManager(vault KeyVault, alias string, logger *logger.Logger) *FieldCryptoManager {
	if alias == "" {
		alias = DefaultKeyAlias
	}

	return &FieldCryptoManager{
		vault:  vault,
		box:    NewSecretBox(),
		alias:  alias,
		logger: logger,
	}
}

// Encrypt implements [FieldCrypto]. The payload records the id of the key
// it was sealed under.
func (m *FieldCryptoManager) Encrypt(text string) (models.EncryptedPayload, error) {
	handle, err := m.keyHandle(true)
	if err != nil {
		return models.EncryptedPayload{}, err
	}

	nonce, err := m.box.NewNonce()
	if err != nil {
		return models.EncryptedPayload{}, err
	}

	ciphertext, err := m.vault.EncryptWith(handle, []byte(text), nonce)
	if err != nil {
		if errors.Is(err, ErrKeyUnavailable) {
			m.forgetHandle(handle)
		}
		m.logger.Err(err).Str("func", "FieldCryptoManager.Encrypt").Msg("key vault refused to encrypt field")
		return models.EncryptedPayload{}, fmt.Errorf("encrypt field: %w", err)
	}

	return models.EncryptedPayload{Ciphertext: ciphertext, Nonce: nonce, KeyID: handle.ID}, nil
}

// Decrypt implements [FieldCrypto]. It returns [ErrKeyUnavailable] when no
// key is stored or the payload names a key generation other than the
// current one, and [ErrAuthentication] for anything else that fails to
// verify. Payloads without a key id cannot be told apart from tampered ones.
func (m *FieldCryptoManager) Decrypt(payload models.EncryptedPayload) (string, error) {
	handle, err := m.keyHandle(false)
	if err != nil {
		m.logger.Warn().Err(err).Str("func", "FieldCryptoManager.Decrypt").Msg("field key is not available")
		return "", err
	}
	if payload.KeyID != "" && payload.KeyID != handle.ID {
		m.logger.Warn().Str("func", "FieldCryptoManager.Decrypt").
			Str("payload_key_id", payload.KeyID).
			Str("key_id", handle.ID).
			Msg("field was sealed under a discarded key")
		return "", ErrKeyUnavailable
	}

	plaintext, err := m.vault.DecryptWith(handle, payload.Ciphertext, payload.Nonce)
	switch {
	case err == nil:
	case errors.Is(err, ErrKeyUnavailable):
		m.forgetHandle(handle)
		m.logger.Warn().Str("func", "FieldCryptoManager.Decrypt").Msg("field key is no longer available")
		return "", ErrKeyUnavailable
	default:
		m.logger.Debug().Str("func", "FieldCryptoManager.Decrypt").Msg("field payload failed authentication")
		return "", ErrAuthentication
	}

	return string(plaintext), nil
}

// keyHandle returns the cached handle or asks the vault for one. Only a
// caller passing create may cause a new key to be generated.
func (m *FieldCryptoManager) keyHandle(create bool) (KeyHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handle != nil {
		return *m.handle, nil
	}

	get := m.vault.GetKey
	if create {
		get = m.vault.GetOrCreateKey
	}

	h, err := get(m.alias)
	if err != nil {
		if errors.Is(err, ErrKeyUnavailable) {
			return KeyHandle{}, err
		}
		return KeyHandle{}, fmt.Errorf("%w: %w", ErrKeyUnavailable, err)
	}

	m.handle = &h
	return h, nil
}

func (m *FieldCryptoManager) forgetHandle(stale KeyHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handle != nil && *m.handle == stale {
		m.handle = nil
	}
}
