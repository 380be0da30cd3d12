package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pass-guard/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// CredentialRepository is the local credential table. Password and notes are
// stored exactly as handed in: already sealed by the field crypto.
type CredentialRepository interface {
	// SaveCredential inserts c when c.ID is zero and updates it otherwise.
	// It returns the row id.
	SaveCredential(ctx context.Context, c models.Credential) (int64, error)
	GetCredential(ctx context.Context, id int64) (models.Credential, error)
	GetAllCredentials(ctx context.Context) ([]models.Credential, error)
	SearchCredentials(ctx context.Context, filter models.CredentialFilter, now time.Time) ([]models.Credential, error)
	SetFavorite(ctx context.Context, id int64, favorite bool, updatedAt int64) error
	DeleteCredential(ctx context.Context, id int64) error
}

// CategoryRepository is the local category table.
type CategoryRepository interface {
	SaveCategory(ctx context.Context, c models.Category) (int64, error)
	GetCategory(ctx context.Context, id int64) (models.Category, error)
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	// DeleteCategory removes the category and detaches every credential
	// that referenced it.
	DeleteCategory(ctx context.Context, id int64) error
}

// RecordTx is the set of writes available inside [RecordTransactor.WithinTransaction].
// Inserts keep the ids carried by the records.
type RecordTx interface {
	DeleteAllCredentials(ctx context.Context) error
	DeleteAllCategories(ctx context.Context) error
	InsertCategory(ctx context.Context, c models.Category) error
	InsertCredential(ctx context.Context, c models.Credential) error
}

// RecordTransactor runs fn in a single database transaction. If fn returns
// an error every write made through tx is rolled back.
type RecordTransactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx RecordTx) error) error
}

// KeyValueStore is a small durable key/value store grouped into buckets.
// Each Put, Delete and PutAll is atomic.
type KeyValueStore interface {
	// Get returns [ErrKeyNotFound] when key is absent.
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Put(ctx context.Context, bucket, key string, value []byte) error
	// PutAll writes every entry of values in one transaction.
	PutAll(ctx context.Context, bucket string, values map[string][]byte) error
	// Delete is a no-op for missing keys.
	Delete(ctx context.Context, bucket, key string) error
}
