package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-guard/models"
)

// Field name constants used to specify which fields should be validated.
const (
	// FieldID targets the record id, which must be positive.
	FieldID = "id"

	// FieldTitle targets the credential title.
	FieldTitle = "title"

	// FieldName targets the category name.
	FieldName = "name"

	// FieldPassword targets the credential password: plaintext must be
	// non-empty, backup payloads must decode to a sealed value.
	FieldPassword = "password"

	// FieldNotes targets the optional sealed notes of a backup record.
	FieldNotes = "notes"

	// FieldTimestamps targets createdAt/updatedAt.
	FieldTimestamps = "timestamps"

	// FieldCredentials targets every credential of a snapshot.
	FieldCredentials = "credentials"

	// FieldCategories targets every category of a snapshot.
	FieldCategories = "categories"
)

// minSealedSize is the AES-GCM tag length; no sealed value is shorter.
const minSealedSize = 16

// RecordValidator checks credentials and categories coming from the user or
// from a backup file before they reach the record store.
type RecordValidator struct{}

func NewRecordValidator() Validator {
	return &RecordValidator{}
}

func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.PlainCredential:
		return v.validatePlainCredential(ctx, value, fields...)
	case *models.PlainCredential:
		return v.validatePlainCredential(ctx, *value, fields...)

	case models.Category:
		return v.validateCategory(ctx, value, fields...)
	case *models.Category:
		return v.validateCategory(ctx, *value, fields...)

	case models.CredentialRecord:
		return v.validateCredentialRecord(ctx, value, fields...)
	case *models.CredentialRecord:
		return v.validateCredentialRecord(ctx, *value, fields...)

	case models.CategoryRecord:
		return v.validateCategory(ctx, value.Category(), withDefault(fields, FieldID, FieldName)...)
	case *models.CategoryRecord:
		return v.validateCategory(ctx, value.Category(), withDefault(fields, FieldID, FieldName)...)

	case models.VaultSnapshot:
		return v.validateSnapshot(ctx, value, fields...)
	case *models.VaultSnapshot:
		return v.validateSnapshot(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func withDefault(fields []string, defaults ...string) []string {
	if len(fields) == 0 {
		return defaults
	}
	return fields
}

func (v *RecordValidator) validatePlainCredential(ctx context.Context, c models.PlainCredential, fields ...string) error {
	for _, f := range withDefault(fields, FieldTitle, FieldPassword) {
		switch f {
		case FieldID:
			if c.ID <= 0 {
				return ErrInvalidID
			}
		case FieldTitle:
			if c.Title == "" {
				return ErrEmptyTitle
			}
		case FieldPassword:
			if c.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateCategory checks only the name unless FieldID is requested: new
// categories have no id yet.
func (v *RecordValidator) validateCategory(ctx context.Context, c models.Category, fields ...string) error {
	for _, f := range withDefault(fields, FieldName) {
		switch f {
		case FieldID:
			if c.ID <= 0 {
				return ErrInvalidID
			}
		case FieldName:
			if c.Name == "" {
				return ErrEmptyName
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateCredentialRecord(ctx context.Context, r models.CredentialRecord, fields ...string) error {
	for _, f := range withDefault(fields, FieldID, FieldTitle, FieldPassword, FieldNotes, FieldTimestamps) {
		switch f {
		case FieldID:
			if r.ID <= 0 {
				return ErrInvalidID
			}
		case FieldTitle:
			if r.Title == "" {
				return ErrEmptyTitle
			}
		case FieldPassword:
			if !isSealed(r.PasswordCipher, r.PasswordNonce) {
				return ErrInvalidPassword
			}
		case FieldNotes:
			if (r.NotesCipher == "") != (r.NotesNonce == "") {
				return ErrInvalidNotes
			}
			if r.NotesCipher != "" && !isSealed(r.NotesCipher, r.NotesNonce) {
				return ErrInvalidNotes
			}
		case FieldTimestamps:
			if r.CreatedAt < 0 || r.UpdatedAt < 0 {
				return ErrInvalidTimestamps
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateSnapshot(ctx context.Context, s models.VaultSnapshot, fields ...string) error {
	categoryIDs := make(map[int64]struct{}, len(s.Categories))

	for _, f := range withDefault(fields, FieldCategories, FieldCredentials) {
		switch f {
		case FieldCategories:
			for i, c := range s.Categories {
				if err := v.validateCategory(ctx, c.Category(), FieldID, FieldName); err != nil {
					return fmt.Errorf("category at index %d: %w", i, err)
				}
				if _, dup := categoryIDs[c.ID]; dup {
					return fmt.Errorf("category at index %d: %w", i, ErrDuplicateID)
				}
				categoryIDs[c.ID] = struct{}{}
			}
		case FieldCredentials:
			seen := make(map[int64]struct{}, len(s.Credentials))
			for i, c := range s.Credentials {
				if err := v.validateCredentialRecord(ctx, c); err != nil {
					return fmt.Errorf("credential at index %d: %w", i, err)
				}
				if _, dup := seen[c.ID]; dup {
					return fmt.Errorf("credential at index %d: %w", i, ErrDuplicateID)
				}
				seen[c.ID] = struct{}{}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// isSealed reports whether cipher and nonce are the base64 form of an
// AES-GCM output.
func isSealed(cipher, nonce string) bool {
	p, err := models.DecodeEncryptedPayload(cipher, nonce)
	if err != nil {
		return false
	}
	return len(p.Nonce) == models.NonceSize && len(p.Ciphertext) >= minSealedSize
}
