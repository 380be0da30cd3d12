// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/utils"
)

var aliasPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,64}$`)

// LocalKeyVault is a [KeyVault] for hosts without a hardware key store.
//
// Each key lives in a memguard Enclave: encrypted in memory, decrypted into
// a locked buffer only for the duration of one seal/open call and destroyed
// right after. Nothing outside this file ever sees the bytes. Keys are
// persisted one file per alias (mode 0600) in dir so that they survive a
// restart; removing the file (or calling Discard) is the equivalent of the
// platform wiping its key material.
type LocalKeyVault struct {
	dir    string
	box    *SecretBox
	ids    *utils.UUIDGenerator
	logger *logger.Logger

	mu   sync.RWMutex
	keys map[string]*vaultKey
}

type vaultKey struct {
	id      string
	enclave *memguard.Enclave
}

// keyFile is the on-disk form of a vault key.
type keyFile struct {
	ID  string `json:"id"`
	Key []byte `json:"key"`
}

// NewLocalKeyVault returns a KeyVault persisting keys under dir.
func NewLocalKeyVault(dir string, logger *logger.Logger) (*LocalKeyVault, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create key vault dir: %w", err)
	}

	return &LocalKeyVault{
		dir:    dir,
		box:    NewSecretBox(),
		ids:    utils.NewUUIDGenerator(),
		logger: logger,
		keys:   make(map[string]*vaultKey),
	}, nil
}

// GetOrCreateKey implements [KeyVault].
func (v *LocalKeyVault) GetOrCreateKey(alias string) (KeyHandle, error) {
	if !aliasPattern.MatchString(alias) {
		return KeyHandle{}, fmt.Errorf("invalid key alias %q", alias)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if k, ok := v.keys[alias]; ok {
		return KeyHandle{Alias: alias, ID: k.id}, nil
	}

	k, err := v.loadKey(alias)
	if errors.Is(err, os.ErrNotExist) {
		k, err = v.createKey(alias)
	}
	if err != nil {
		v.logger.Err(err).Str("func", "LocalKeyVault.GetOrCreateKey").Str("alias", alias).Msg("key vault failure")
		return KeyHandle{}, err
	}

	v.keys[alias] = k
	return KeyHandle{Alias: alias, ID: k.id}, nil
}

// GetKey implements [KeyVault]. A missing key file is reported as
// [ErrKeyUnavailable] and nothing is written.
func (v *LocalKeyVault) GetKey(alias string) (KeyHandle, error) {
	if !aliasPattern.MatchString(alias) {
		return KeyHandle{}, fmt.Errorf("invalid key alias %q", alias)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if k, ok := v.keys[alias]; ok {
		return KeyHandle{Alias: alias, ID: k.id}, nil
	}

	k, err := v.loadKey(alias)
	if errors.Is(err, os.ErrNotExist) {
		return KeyHandle{}, ErrKeyUnavailable
	}
	if err != nil {
		v.logger.Err(err).Str("func", "LocalKeyVault.GetKey").Str("alias", alias).Msg("key vault failure")
		return KeyHandle{}, fmt.Errorf("%w: %w", ErrKeyUnavailable, err)
	}

	v.keys[alias] = k
	return KeyHandle{Alias: alias, ID: k.id}, nil
}

// EncryptWith implements [KeyVault].
func (v *LocalKeyVault) EncryptWith(handle KeyHandle, plaintext, nonce []byte) ([]byte, error) {
	var out []byte
	err := v.withKey(handle, func(key []byte) error {
		var sealErr error
		out, sealErr = v.box.Seal(key, nonce, plaintext)
		return sealErr
	})
	return out, err
}

// DecryptWith implements [KeyVault].
func (v *LocalKeyVault) DecryptWith(handle KeyHandle, ciphertext, nonce []byte) ([]byte, error) {
	var out []byte
	err := v.withKey(handle, func(key []byte) error {
		var openErr error
		out, openErr = v.box.Open(key, nonce, ciphertext)
		return openErr
	})
	return out, err
}

// Discard forgets the key behind alias and deletes its file. Payloads sealed
// under it can no longer be opened.
func (v *LocalKeyVault) Discard(alias string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	delete(v.keys, alias)
	if err := os.Remove(v.keyPath(alias)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove key file: %w", err)
	}

	v.logger.Warn().Str("func", "LocalKeyVault.Discard").Str("alias", alias).Msg("key material discarded")
	return nil
}

func (v *LocalKeyVault) withKey(handle KeyHandle, fn func(key []byte) error) error {
	v.mu.RLock()
	k, ok := v.keys[handle.Alias]
	v.mu.RUnlock()

	if !ok || k.id != handle.ID {
		return ErrKeyUnavailable
	}

	buf, err := k.enclave.Open()
	if err != nil {
		return fmt.Errorf("%w: open enclave: %w", ErrKeyUnavailable, err)
	}
	defer buf.Destroy()

	return fn(buf.Bytes())
}

func (v *LocalKeyVault) loadKey(alias string) (*vaultKey, error) {
	raw, err := os.ReadFile(v.keyPath(alias))
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(raw)

	var f keyFile
	if err = json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode key file: %w", err)
	}
	if len(f.Key) != KeySize {
		memguard.WipeBytes(f.Key)
		return nil, fmt.Errorf("%w: stored key for %q", ErrInvalidKey, alias)
	}

	// NewEnclave wipes f.Key.
	return &vaultKey{id: f.ID, enclave: memguard.NewEnclave(f.Key)}, nil
}

func (v *LocalKeyVault) createKey(alias string) (*vaultKey, error) {
	buf := memguard.NewBufferRandom(KeySize)
	id := v.ids.Generate()

	raw, err := json.Marshal(keyFile{ID: id, Key: buf.Bytes()})
	if err != nil {
		buf.Destroy()
		return nil, fmt.Errorf("encode key file: %w", err)
	}
	defer memguard.WipeBytes(raw)

	if err = utils.WriteFileAtomic(v.keyPath(alias), raw, 0o600); err != nil {
		buf.Destroy()
		return nil, err
	}

	v.logger.Info().Str("func", "LocalKeyVault.createKey").Str("alias", alias).Str("key_id", id).Msg("generated new vault key")

	// Seal destroys buf.
	return &vaultKey{id: id, enclave: buf.Seal()}, nil
}

func (v *LocalKeyVault) keyPath(alias string) string {
	return filepath.Join(v.dir, alias+".key")
}
