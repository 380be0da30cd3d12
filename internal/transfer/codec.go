// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package transfer writes and restores passphrase-protected backups of the
// whole record store.
//
// A backup is a JSON envelope {version, salt, nonce, cipher}. The cipher
// field is AES-256-GCM over a JSON [models.VaultSnapshot] under a key derived
// from the passphrase with scrypt. Credential password and notes ciphertext
// is copied verbatim, so a backup can only be read back on a device that
// still holds the field key.
package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/go-pass-guard/internal/crypto"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/store"
	"github.com/MKhiriev/go-pass-guard/internal/utils"
	"github.com/MKhiriev/go-pass-guard/internal/validators"
	"github.com/MKhiriev/go-pass-guard/models"
)

// Codec exports and imports vault backups.
type Codec struct {
	credentials store.CredentialRepository
	categories  store.CategoryRepository
	transactor  store.RecordTransactor
	validator   validators.Validator
	box         *crypto.SecretBox
	kdf         KDFParams
	now         func() time.Time
	logger      *logger.Logger
}

// NewCodec returns a Codec over the client storages.
func NewCodec(storages *store.ClientStorages, logger *logger.Logger) *Codec {
	return newCodec(storages.CredentialRepository, storages.CategoryRepository, storages.Transactor, logger)
}

func newCodec(credentials store.CredentialRepository, categories store.CategoryRepository, transactor store.RecordTransactor, logger *logger.Logger) *Codec {
	return &Codec{
		credentials: credentials,
		categories:  categories,
		transactor:  transactor,
		validator:   validators.NewRecordValidator(),
		box:         crypto.NewSecretBox(),
		kdf:         DefaultKDFParams,
		now:         time.Now,
		logger:      logger,
	}
}

// Export writes a backup of every credential and category to w. Nothing is
// written to w unless the whole backup was built.
func (c *Codec) Export(ctx context.Context, w io.Writer, passphrase string) error {
	data, err := c.seal(ctx, passphrase)
	if err != nil {
		return err
	}

	if _, err = w.Write(data); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// ExportFile writes a backup to path. The file appears only once complete;
// an existing file at path is left untouched on any failure.
func (c *Codec) ExportFile(ctx context.Context, path, passphrase string) error {
	data, err := c.seal(ctx, passphrase)
	if err != nil {
		return err
	}

	if err = ctx.Err(); err != nil {
		return err
	}
	if err = utils.WriteFileAtomic(path, data, 0o600); err != nil {
		c.logger.Err(err).Str("func", "Codec.ExportFile").Str("path", path).Msg("failed to write backup file")
		return fmt.Errorf("write backup file: %w", err)
	}

	c.logger.Info().Str("func", "Codec.ExportFile").Str("path", path).Msg("backup written")
	return nil
}

// Import replaces the whole record store with the backup read from r.
//
// The version is checked first, then the ciphertext is authenticated, then
// every record is validated. Only after all three succeed are the existing
// rows deleted and the backup rows inserted, in one transaction that rolls
// back on any failure.
func (c *Codec) Import(ctx context.Context, r io.Reader, passphrase string) (models.ImportResult, error) {
	if passphrase == "" {
		return models.ImportResult{}, fmt.Errorf("%w: empty passphrase", ErrInvalidInput)
	}

	env, err := decodeEnvelope(r)
	if err != nil {
		c.logger.Warn().Err(err).Str("func", "Codec.Import").Msg("rejected backup envelope")
		return models.ImportResult{}, err
	}

	plaintext, err := c.open(ctx, env, passphrase)
	if err != nil {
		return models.ImportResult{}, err
	}

	credentials, categories, err := c.decodeSnapshot(ctx, plaintext)
	if err != nil {
		c.logger.Warn().Err(err).Str("func", "Codec.Import").Msg("rejected backup contents")
		return models.ImportResult{}, err
	}

	err = c.transactor.WithinTransaction(ctx, func(ctx context.Context, tx store.RecordTx) error {
		if err := tx.DeleteAllCredentials(ctx); err != nil {
			return err
		}
		if err := tx.DeleteAllCategories(ctx); err != nil {
			return err
		}
		for _, cat := range categories {
			if err := tx.InsertCategory(ctx, cat); err != nil {
				return err
			}
		}
		for _, cred := range credentials {
			if err := tx.InsertCredential(ctx, cred); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.logger.Err(err).Str("func", "Codec.Import").Msg("backup import rolled back")
		return models.ImportResult{}, fmt.Errorf("apply backup: %w", err)
	}

	res := models.ImportResult{Credentials: len(credentials), Categories: len(categories)}
	c.logger.Info().Str("func", "Codec.Import").
		Int("credentials", res.Credentials).
		Int("categories", res.Categories).
		Msg("backup imported")
	return res, nil
}

// ImportFile is [Codec.Import] reading from the file at path.
func (c *Codec) ImportFile(ctx context.Context, path, passphrase string) (models.ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.ImportResult{}, fmt.Errorf("open backup file: %w", err)
	}
	defer f.Close()

	return c.Import(ctx, f, passphrase)
}

func (c *Codec) seal(ctx context.Context, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("%w: empty passphrase", ErrInvalidInput)
	}

	snapshot, err := c.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	plaintext, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	defer memguard.WipeBytes(plaintext)

	salt, err := crypto.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate backup salt: %w", err)
	}
	nonce, err := c.box.NewNonce()
	if err != nil {
		return nil, fmt.Errorf("generate backup nonce: %w", err)
	}

	key, err := deriveKey(ctx, c.kdf, passphrase, salt)
	if err != nil {
		return nil, fmt.Errorf("derive backup key: %w", err)
	}
	defer memguard.WipeBytes(key)

	ciphertext, err := c.box.Seal(key, nonce, plaintext)
	if err != nil {
		return nil, fmt.Errorf("seal backup: %w", err)
	}

	var buf bytes.Buffer
	if err = encodeEnvelope(&buf, sealed{salt: salt, nonce: nonce, ciphertext: ciphertext}); err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}

	c.logger.Debug().Str("func", "Codec.seal").
		Int("credentials", len(snapshot.Credentials)).
		Int("categories", len(snapshot.Categories)).
		Msg("backup sealed")
	return buf.Bytes(), nil
}

func (c *Codec) snapshot(ctx context.Context) (models.VaultSnapshot, error) {
	credentials, err := c.credentials.GetAllCredentials(ctx)
	if err != nil {
		return models.VaultSnapshot{}, fmt.Errorf("read credentials: %w", err)
	}
	categories, err := c.categories.GetAllCategories(ctx)
	if err != nil {
		return models.VaultSnapshot{}, fmt.Errorf("read categories: %w", err)
	}

	s := models.VaultSnapshot{
		Version:     ExportVersion,
		CreatedAt:   c.now().UnixMilli(),
		Credentials: make([]models.CredentialRecord, 0, len(credentials)),
		Categories:  make([]models.CategoryRecord, 0, len(categories)),
	}
	for _, cred := range credentials {
		s.Credentials = append(s.Credentials, models.NewCredentialRecord(cred))
	}
	for _, cat := range categories {
		s.Categories = append(s.Categories, models.NewCategoryRecord(cat))
	}

	return s, nil
}

func (c *Codec) open(ctx context.Context, env sealed, passphrase string) ([]byte, error) {
	key, err := deriveKey(ctx, c.kdf, passphrase, env.salt)
	if err != nil {
		return nil, fmt.Errorf("derive backup key: %w", err)
	}
	defer memguard.WipeBytes(key)

	plaintext, err := c.box.Open(key, env.nonce, env.ciphertext)
	if err != nil {
		if errors.Is(err, crypto.ErrAuthentication) {
			return nil, ErrWrongPasswordOrCorruptFile
		}
		return nil, err
	}

	return plaintext, nil
}

func (c *Codec) decodeSnapshot(ctx context.Context, plaintext []byte) ([]models.Credential, []models.Category, error) {
	defer memguard.WipeBytes(plaintext)

	if err := checkShape(plaintext); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrMalformedBackup, err)
	}

	var snapshot models.VaultSnapshot
	if err := json.Unmarshal(plaintext, &snapshot); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrMalformedBackup, err)
	}
	if err := c.validator.Validate(ctx, snapshot); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrMalformedBackup, err)
	}

	credentials := make([]models.Credential, 0, len(snapshot.Credentials))
	for i, r := range snapshot.Credentials {
		cred, err := r.Credential()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: credential at index %d: %w", ErrMalformedBackup, i, err)
		}
		credentials = append(credentials, cred)
	}

	categories := make([]models.Category, 0, len(snapshot.Categories))
	for _, r := range snapshot.Categories {
		categories = append(categories, r.Category())
	}

	return credentials, categories, nil
}
