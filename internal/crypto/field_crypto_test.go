// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-pass-guard/internal/crypto"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/mock"
	"github.com/MKhiriev/go-pass-guard/models"
)

func newRealManager(t *testing.T) (*crypto.FieldCryptoManager, *crypto.LocalKeyVault) {
	t.Helper()
	vault, err := crypto.NewLocalKeyVault(t.TempDir(), logger.Nop())
	require.NoError(t, err)
	return crypto.NewFieldCryptoManager(vault, "", logger.Nop()), vault
}

func TestFieldCryptoManager_RoundTrip(t *testing.T) {
	m, _ := newRealManager(t)

	for _, text := range []string{"", "p@ss", "пароль с пробелами", "\x00\xff"} {
		payload, err := m.Encrypt(text)
		require.NoError(t, err)
		assert.Len(t, payload.Nonce, models.NonceSize)

		got, err := m.Decrypt(payload)
		require.NoError(t, err)
		assert.Equal(t, text, got)
	}
}

func TestFieldCryptoManager_SameTextDifferentCiphertext(t *testing.T) {
	m, _ := newRealManager(t)

	p1, err := m.Encrypt("same")
	require.NoError(t, err)
	p2, err := m.Encrypt("same")
	require.NoError(t, err)

	assert.NotEqual(t, p1.Nonce, p2.Nonce)
	assert.NotEqual(t, p1.Ciphertext, p2.Ciphertext)
}

func TestFieldCryptoManager_TamperedPayload(t *testing.T) {
	m, _ := newRealManager(t)

	payload, err := m.Encrypt("secret")
	require.NoError(t, err)
	payload.Ciphertext[len(payload.Ciphertext)-1] ^= 0x01

	_, err = m.Decrypt(payload)
	assert.ErrorIs(t, err, crypto.ErrAuthentication)
}

func TestFieldCryptoManager_DiscardedKey(t *testing.T) {
	m, vault := newRealManager(t)

	old, err := m.Encrypt("before")
	require.NoError(t, err)

	require.NoError(t, vault.Discard(crypto.DefaultKeyAlias))

	_, err = m.Decrypt(old)
	assert.ErrorIs(t, err, crypto.ErrKeyUnavailable)

	// next write provisions a new key and keeps working
	fresh, err := m.Encrypt("after")
	require.NoError(t, err)
	got, err := m.Decrypt(fresh)
	require.NoError(t, err)
	assert.Equal(t, "after", got)

	// old payloads name the discarded key, not a tampered one
	_, err = m.Decrypt(old)
	assert.ErrorIs(t, err, crypto.ErrKeyUnavailable)
	assert.NotErrorIs(t, err, crypto.ErrAuthentication)
}

func TestFieldCryptoManager_KeyLostBetweenRuns(t *testing.T) {
	dir := t.TempDir()

	vault, err := crypto.NewLocalKeyVault(dir, logger.Nop())
	require.NoError(t, err)
	old, err := crypto.NewFieldCryptoManager(vault, "", logger.Nop()).Encrypt("before")
	require.NoError(t, err)
	require.NotEmpty(t, old.KeyID)

	keyFile := filepath.Join(dir, crypto.DefaultKeyAlias+".key")
	require.NoError(t, os.Remove(keyFile))

	restarted, err := crypto.NewLocalKeyVault(dir, logger.Nop())
	require.NoError(t, err)
	m := crypto.NewFieldCryptoManager(restarted, "", logger.Nop())

	_, err = m.Decrypt(old)
	require.ErrorIs(t, err, crypto.ErrKeyUnavailable)
	assert.NoFileExists(t, keyFile, "decrypt must not provision a key")

	// the next write provisions a fresh key; the old field stays unavailable
	fresh, err := m.Encrypt("after")
	require.NoError(t, err)
	assert.NotEqual(t, old.KeyID, fresh.KeyID)
	assert.FileExists(t, keyFile)

	_, err = m.Decrypt(old)
	assert.ErrorIs(t, err, crypto.ErrKeyUnavailable)

	got, err := m.Decrypt(fresh)
	require.NoError(t, err)
	assert.Equal(t, "after", got)
}

func TestFieldCryptoManager_VaultErrors(t *testing.T) {
	handle := crypto.KeyHandle{Alias: "alias", ID: "id-1"}
	payload := models.EncryptedPayload{Ciphertext: []byte("ct"), Nonce: make([]byte, models.NonceSize), KeyID: "id-1"}

	tests := []struct {
		name    string
		setup   func(v *mock.MockKeyVault)
		call    func(m *crypto.FieldCryptoManager) error
		wantErr error
	}{
		{
			name: "key creation fails on encrypt",
			setup: func(v *mock.MockKeyVault) {
				v.EXPECT().GetOrCreateKey("alias").Return(crypto.KeyHandle{}, errors.New("disk full"))
			},
			call: func(m *crypto.FieldCryptoManager) error {
				_, err := m.Encrypt("x")
				return err
			},
			wantErr: crypto.ErrKeyUnavailable,
		},
		{
			name: "no key stored on decrypt",
			setup: func(v *mock.MockKeyVault) {
				v.EXPECT().GetKey("alias").Return(crypto.KeyHandle{}, crypto.ErrKeyUnavailable)
			},
			call: func(m *crypto.FieldCryptoManager) error {
				_, err := m.Decrypt(payload)
				return err
			},
			wantErr: crypto.ErrKeyUnavailable,
		},
		{
			name: "payload sealed under another key",
			setup: func(v *mock.MockKeyVault) {
				v.EXPECT().GetKey("alias").Return(crypto.KeyHandle{Alias: "alias", ID: "id-2"}, nil)
			},
			call: func(m *crypto.FieldCryptoManager) error {
				_, err := m.Decrypt(payload)
				return err
			},
			wantErr: crypto.ErrKeyUnavailable,
		},
		{
			name: "vault rejects ciphertext",
			setup: func(v *mock.MockKeyVault) {
				v.EXPECT().GetKey("alias").Return(handle, nil)
				v.EXPECT().DecryptWith(handle, payload.Ciphertext, payload.Nonce).Return(nil, crypto.ErrAuthentication)
			},
			call: func(m *crypto.FieldCryptoManager) error {
				_, err := m.Decrypt(payload)
				return err
			},
			wantErr: crypto.ErrAuthentication,
		},
		{
			name: "unexpected vault failure maps to authentication",
			setup: func(v *mock.MockKeyVault) {
				v.EXPECT().GetKey("alias").Return(handle, nil)
				v.EXPECT().DecryptWith(handle, gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))
			},
			call: func(m *crypto.FieldCryptoManager) error {
				_, err := m.Decrypt(payload)
				return err
			},
			wantErr: crypto.ErrAuthentication,
		},
		{
			name: "key discarded between calls",
			setup: func(v *mock.MockKeyVault) {
				v.EXPECT().GetKey("alias").Return(handle, nil)
				v.EXPECT().DecryptWith(handle, gomock.Any(), gomock.Any()).Return(nil, crypto.ErrKeyUnavailable)
			},
			call: func(m *crypto.FieldCryptoManager) error {
				_, err := m.Decrypt(payload)
				return err
			},
			wantErr: crypto.ErrKeyUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			vault := mock.NewMockKeyVault(ctrl)
			tt.setup(vault)

			m := crypto.NewFieldCryptoManager(vault, "alias", logger.Nop())
			assert.ErrorIs(t, tt.call(m), tt.wantErr)
		})
	}
}

func TestFieldCryptoManager_HandleIsCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	vault := mock.NewMockKeyVault(ctrl)
	handle := crypto.KeyHandle{Alias: crypto.DefaultKeyAlias, ID: "id-1"}

	vault.EXPECT().GetOrCreateKey(crypto.DefaultKeyAlias).Return(handle, nil).Times(1)
	vault.EXPECT().EncryptWith(handle, []byte("a"), gomock.Any()).Return([]byte("ct"), nil).Times(2)

	m := crypto.NewFieldCryptoManager(vault, "", logger.Nop())
	p, err := m.Encrypt("a")
	require.NoError(t, err)
	assert.Equal(t, "id-1", p.KeyID)
	_, err = m.Encrypt("a")
	require.NoError(t, err)
}
