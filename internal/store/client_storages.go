package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-guard/internal/config"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
)

// ClientStorages groups all client-side storage into a single value that can
// be passed around the service layer.
type ClientStorages struct {
	// CredentialRepository holds credentials with sealed password and notes.
	CredentialRepository CredentialRepository
	// CategoryRepository holds credential categories.
	CategoryRepository CategoryRepository
	// Transactor runs multi-table writes atomically (backup import).
	Transactor RecordTransactor
	// KV holds the PIN credential and user settings.
	KV KeyValueStore

	db   *DB
	bolt *BoltStore
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to cfg.DB.DSN, creating the database file
//     if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Opens the bbolt key/value file at cfg.KV.Path.
//
// Returns an error if any step fails; resources opened by earlier steps are
// released.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	kv, err := NewBoltStore(cfg.KV, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kv store error: %w", err)
	}

	return &ClientStorages{
		CredentialRepository: NewCredentialRepository(db, logger),
		CategoryRepository:   NewCategoryRepository(db, logger),
		Transactor:           NewRecordTransactor(db, logger),
		KV:                   kv,
		db:                   db,
		bolt:                 kv,
	}, nil
}

// Close closes both the SQLite connection and the bbolt file.
func (s *ClientStorages) Close() error {
	return errors.Join(s.db.Close(), s.bolt.Close())
}
