// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-guard/internal/logger"
)

func newTestVault(t *testing.T, dir string) *LocalKeyVault {
	t.Helper()
	v, err := NewLocalKeyVault(dir, logger.Nop())
	require.NoError(t, err)
	return v
}

func TestLocalKeyVault_GetOrCreateKeyIsStable(t *testing.T) {
	v := newTestVault(t, t.TempDir())

	h1, err := v.GetOrCreateKey("field")
	require.NoError(t, err)
	h2, err := v.GetOrCreateKey("field")
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.NotEmpty(t, h1.ID)
}

func TestLocalKeyVault_RoundTrip(t *testing.T) {
	v := newTestVault(t, t.TempDir())
	h, err := v.GetOrCreateKey("field")
	require.NoError(t, err)

	nonce := bytes.Repeat([]byte{0x07}, 12)
	ct, err := v.EncryptWith(h, []byte("p@ssw0rd"), nonce)
	require.NoError(t, err)
	assert.NotContains(t, string(ct), "p@ssw0rd")

	pt, err := v.DecryptWith(h, ct, nonce)
	require.NoError(t, err)
	assert.Equal(t, "p@ssw0rd", string(pt))
}

func TestLocalKeyVault_KeySurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	nonce := bytes.Repeat([]byte{0x01}, 12)

	first := newTestVault(t, dir)
	h, err := first.GetOrCreateKey("field")
	require.NoError(t, err)
	ct, err := first.EncryptWith(h, []byte("persisted"), nonce)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "field.key"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second := newTestVault(t, dir)
	h2, err := second.GetOrCreateKey("field")
	require.NoError(t, err)
	assert.Equal(t, h.ID, h2.ID)

	pt, err := second.DecryptWith(h2, ct, nonce)
	require.NoError(t, err)
	assert.Equal(t, "persisted", string(pt))
}

func TestLocalKeyVault_DiscardMakesHandleUnavailable(t *testing.T) {
	dir := t.TempDir()
	v := newTestVault(t, dir)
	nonce := bytes.Repeat([]byte{0x02}, 12)

	h, err := v.GetOrCreateKey("field")
	require.NoError(t, err)
	ct, err := v.EncryptWith(h, []byte("gone"), nonce)
	require.NoError(t, err)

	require.NoError(t, v.Discard("field"))

	_, err = v.DecryptWith(h, ct, nonce)
	assert.ErrorIs(t, err, ErrKeyUnavailable)

	_, err = os.Stat(filepath.Join(dir, "field.key"))
	assert.True(t, os.IsNotExist(err))

	fresh, err := v.GetOrCreateKey("field")
	require.NoError(t, err)
	assert.NotEqual(t, h.ID, fresh.ID)

	// the old handle stays dead even though the alias has a key again
	_, err = v.EncryptWith(h, []byte("x"), nonce)
	assert.ErrorIs(t, err, ErrKeyUnavailable)
}

func TestLocalKeyVault_TamperedCiphertext(t *testing.T) {
	v := newTestVault(t, t.TempDir())
	nonce := bytes.Repeat([]byte{0x03}, 12)

	h, err := v.GetOrCreateKey("field")
	require.NoError(t, err)
	ct, err := v.EncryptWith(h, []byte("secret"), nonce)
	require.NoError(t, err)

	ct[0] ^= 0xFF
	_, err = v.DecryptWith(h, ct, nonce)
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestLocalKeyVault_InvalidAlias(t *testing.T) {
	v := newTestVault(t, t.TempDir())

	for _, alias := range []string{"", "../escape", "with space", string(bytes.Repeat([]byte("a"), 65))} {
		_, err := v.GetOrCreateKey(alias)
		assert.Error(t, err, "alias %q", alias)
	}
}

func TestLocalKeyVault_CorruptKeyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "field.key"), []byte(`{"id":"x","key":"AAAA"}`), 0o600))

	v := newTestVault(t, dir)
	_, err := v.GetOrCreateKey("field")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestLocalKeyVault_GetKey(t *testing.T) {
	dir := t.TempDir()
	v := newTestVault(t, dir)

	_, err := v.GetKey("field")
	require.ErrorIs(t, err, ErrKeyUnavailable)
	assert.NoFileExists(t, filepath.Join(dir, "field.key"))

	created, err := v.GetOrCreateKey("field")
	require.NoError(t, err)

	got, err := newTestVault(t, dir).GetKey("field")
	require.NoError(t, err)
	assert.Equal(t, created, got)

	require.NoError(t, v.Discard("field"))
	_, err = v.GetKey("field")
	assert.ErrorIs(t, err, ErrKeyUnavailable)
}
