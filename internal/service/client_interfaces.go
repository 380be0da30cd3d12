package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pass-guard/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// VaultLock is the lock state machine as seen by the services. It is
// implemented by *lock.StateMachine.
type VaultLock interface {
	State() models.LockState
	Subscribe(ctx context.Context) <-chan models.LockState

	SetPin(ctx context.Context, pin string) error
	// ValidatePin returns true and unlocks the vault when pin matches.
	ValidatePin(ctx context.Context, pin string) (bool, error)
	Unlock(ctx context.Context) error
	Lock(ctx context.Context) error
	ClearPin(ctx context.Context) error

	ShouldAutoLock(ctx context.Context) (bool, error)
	Timeout(ctx context.Context) (int32, error)
	UpdateTimeout(ctx context.Context, minutes int32) error
}

// TransferCodec writes and restores backup files. It is implemented by
// *transfer.Codec.
type TransferCodec interface {
	ExportFile(ctx context.Context, path, passphrase string) error
	ImportFile(ctx context.Context, path, passphrase string) (models.ImportResult, error)
}

// CredentialService manages credentials. Every method fails with
// [ErrVaultLocked] unless the vault is unlocked.
type CredentialService interface {
	// Create encrypts the password and notes of c and stores it. ID,
	// CreatedAt and UpdatedAt of c are ignored.
	Create(ctx context.Context, c models.PlainCredential) (int64, error)

	// Update replaces every field of the credential c.ID except CreatedAt.
	Update(ctx context.Context, c models.PlainCredential) error

	// Reveal returns the credential with password and notes decrypted.
	Reveal(ctx context.Context, id int64) (models.PlainCredential, error)

	// Search lists credentials matching filter without decrypting
	// passwords. A non-empty query also matches the decrypted notes.
	Search(ctx context.Context, filter models.CredentialFilter) ([]models.Credential, error)

	SetFavorite(ctx context.Context, id int64, favorite bool) error
	Delete(ctx context.Context, id int64) error
}

// CategoryService manages categories. Every method fails with
// [ErrVaultLocked] unless the vault is unlocked.
type CategoryService interface {
	// Save inserts c when c.ID is zero and renames it otherwise.
	Save(ctx context.Context, c models.Category) (int64, error)
	List(ctx context.Context) ([]models.Category, error)
	// Delete removes the category; its credentials become uncategorised.
	Delete(ctx context.Context, id int64) error
}

// SettingsService reads and writes user preferences.
type SettingsService interface {
	Get(ctx context.Context) (models.UserSettings, error)
	SetAutoLockTimeout(ctx context.Context, minutes int32) error
	SetClipboardClear(ctx context.Context, seconds int32) error
}

// ClipboardService puts revealed secrets on the system clipboard for a
// limited time.
type ClipboardService interface {
	// Copy writes text to the clipboard and schedules it to be cleared after
	// the configured delay, or when ctx is done, whichever comes first. The
	// clipboard is only cleared if it still holds text. It returns when the
	// clear is due.
	Copy(ctx context.Context, text string) (time.Time, error)

	// Wait blocks until every scheduled clear has run.
	Wait()
}

// TransferService exports and imports backups. Both operations require the
// vault to be unlocked.
type TransferService interface {
	Export(ctx context.Context, path, passphrase string) error
	Import(ctx context.Context, path, passphrase string) (models.ImportResult, error)
}

// AutoLockJob periodically locks the vault once the auto-lock timeout has
// passed since the last unlock.
type AutoLockJob interface {
	// Start launches the job. A running job is stopped first.
	Start(ctx context.Context)

	// Stop signals the job to exit and blocks until it has.
	Stop()
}
