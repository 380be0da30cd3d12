// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-guard/models"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func b64(n int) string { return base64.StdEncoding.EncodeToString(make([]byte, n)) }

func validRecord(id int64) models.CredentialRecord {
	return models.CredentialRecord{
		ID:             id,
		Title:          "GitHub",
		Username:       "octo",
		PasswordCipher: b64(24),
		PasswordNonce:  b64(models.NonceSize),
		NotesCipher:    b64(16),
		NotesNonce:     b64(models.NonceSize),
		CreatedAt:      1,
		UpdatedAt:      2,
	}
}

// ---------------------------------------------------------------------------
// PlainCredential / Category
// ---------------------------------------------------------------------------

func TestRecordValidator_PlainCredential(t *testing.T) {
	v := NewRecordValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.PlainCredential{Title: "t", Password: "p"}))
	assert.ErrorIs(t, v.Validate(ctx, &models.PlainCredential{Password: "p"}), ErrEmptyTitle)
	assert.ErrorIs(t, v.Validate(ctx, models.PlainCredential{Title: "t"}), ErrEmptyPassword)
	assert.ErrorIs(t, v.Validate(ctx, models.PlainCredential{Title: "t", Password: "p"}, FieldID), ErrInvalidID)
	assert.ErrorIs(t, v.Validate(ctx, models.PlainCredential{}, "bogus"), ErrUnknownField)
}

func TestRecordValidator_Category(t *testing.T) {
	v := NewRecordValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.Category{Name: "Work"}))
	assert.ErrorIs(t, v.Validate(ctx, models.Category{}), ErrEmptyName)
	assert.ErrorIs(t, v.Validate(ctx, models.CategoryRecord{Name: "Work"}), ErrInvalidID)
	assert.NoError(t, v.Validate(ctx, &models.CategoryRecord{ID: 1, Name: "Work"}))
}

func TestRecordValidator_UnsupportedType(t *testing.T) {
	assert.ErrorIs(t, NewRecordValidator().Validate(context.Background(), 42), ErrUnsupportedType)
}

// ---------------------------------------------------------------------------
// CredentialRecord
// ---------------------------------------------------------------------------

func TestRecordValidator_CredentialRecord(t *testing.T) {
	v := NewRecordValidator()

	tests := []struct {
		name    string
		mutate  func(r *models.CredentialRecord)
		wantErr error
	}{
		{name: "valid", mutate: func(r *models.CredentialRecord) {}},
		{name: "no notes", mutate: func(r *models.CredentialRecord) { r.NotesCipher, r.NotesNonce = "", "" }},
		{name: "zero id", mutate: func(r *models.CredentialRecord) { r.ID = 0 }, wantErr: ErrInvalidID},
		{name: "empty title", mutate: func(r *models.CredentialRecord) { r.Title = "" }, wantErr: ErrEmptyTitle},
		{name: "missing password", mutate: func(r *models.CredentialRecord) { r.PasswordCipher = "" }, wantErr: ErrInvalidPassword},
		{name: "not base64", mutate: func(r *models.CredentialRecord) { r.PasswordCipher = "%%%" }, wantErr: ErrInvalidPassword},
		{name: "short nonce", mutate: func(r *models.CredentialRecord) { r.PasswordNonce = b64(8) }, wantErr: ErrInvalidPassword},
		{name: "cipher shorter than tag", mutate: func(r *models.CredentialRecord) { r.PasswordCipher = b64(15) }, wantErr: ErrInvalidPassword},
		{name: "notes without nonce", mutate: func(r *models.CredentialRecord) { r.NotesNonce = "" }, wantErr: ErrInvalidNotes},
		{name: "broken notes", mutate: func(r *models.CredentialRecord) { r.NotesCipher = "!" }, wantErr: ErrInvalidNotes},
		{name: "negative timestamp", mutate: func(r *models.CredentialRecord) { r.UpdatedAt = -1 }, wantErr: ErrInvalidTimestamps},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord(1)
			tt.mutate(&r)
			err := v.Validate(context.Background(), r)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// VaultSnapshot
// ---------------------------------------------------------------------------

func TestRecordValidator_Snapshot(t *testing.T) {
	v := NewRecordValidator()
	ctx := context.Background()

	snapshot := models.VaultSnapshot{
		Version:    1,
		Categories: []models.CategoryRecord{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}},
	}
	for i := int64(1); i <= 10; i++ {
		snapshot.Credentials = append(snapshot.Credentials, validRecord(i))
	}
	require.NoError(t, v.Validate(ctx, snapshot))

	broken := snapshot
	broken.Credentials = append([]models.CredentialRecord(nil), snapshot.Credentials...)
	broken.Credentials[4].PasswordNonce = ""
	err := v.Validate(ctx, &broken)
	assert.ErrorIs(t, err, ErrInvalidPassword)
	assert.True(t, strings.Contains(err.Error(), "index 4"))

	dupCred := snapshot
	dupCred.Credentials = append([]models.CredentialRecord(nil), snapshot.Credentials...)
	dupCred.Credentials[9].ID = 1
	assert.ErrorIs(t, v.Validate(ctx, dupCred), ErrDuplicateID)

	dupCat := snapshot
	dupCat.Categories = []models.CategoryRecord{{ID: 1, Name: "A"}, {ID: 1, Name: "B"}}
	assert.ErrorIs(t, v.Validate(ctx, dupCat), ErrDuplicateID)

	assert.NoError(t, v.Validate(ctx, models.VaultSnapshot{Version: 1}))
}
