package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/MKhiriev/go-pass-guard/internal/config"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
)

// Bucket names used by the client.
const (
	LockBucket     = "lock"
	SettingsBucket = "settings"
)

// BoltStore implements [KeyValueStore] on top of a single bbolt file.
type BoltStore struct {
	db     *bbolt.DB
	logger *logger.Logger
}

// NewBoltStore opens (or creates) the bbolt file at cfg.Path.
func NewBoltStore(cfg config.ClientKV, log *logger.Logger) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create kv directory: %w", err)
	}

	db, err := bbolt.Open(cfg.Path, 0o600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		log.Err(err).Str("func", "NewBoltStore").Str("path", cfg.Path).Msg("error opening kv store")
		return nil, fmt.Errorf("failed to open kv store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{LockBucket, SettingsBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	log.Debug().Str("func", "NewBoltStore").Str("path", cfg.Path).Msg("opened kv store")
	return &BoltStore{db: db, logger: log}, nil
}

// Get implements [KeyValueStore].
func (s *BoltStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return ErrKeyNotFound
		}
		v := b.Get([]byte(key))
		if v == nil {
			return ErrKeyNotFound
		}
		// v is only valid inside the transaction
		value = append([]byte(nil), v...)
		return nil
	})

	return value, err
}

// Put implements [KeyValueStore].
func (s *BoltStore) Put(ctx context.Context, bucket, key string, value []byte) error {
	return s.PutAll(ctx, bucket, map[string][]byte{key: value})
}

// PutAll implements [KeyValueStore].
func (s *BoltStore) PutAll(ctx context.Context, bucket string, values map[string][]byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return err
		}
		for k, v := range values {
			if err = b.Put([]byte(k), v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "BoltStore.PutAll").Str("bucket", bucket).Msg("failed to write kv entries")
		return fmt.Errorf("failed to write %s entries: %w", bucket, err)
	}

	return nil
}

// Delete implements [KeyValueStore].
func (s *BoltStore) Delete(ctx context.Context, bucket, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "BoltStore.Delete").Str("bucket", bucket).Msg("failed to delete kv entry")
		return fmt.Errorf("failed to delete %s/%s: %w", bucket, key, err)
	}

	return nil
}

// Close releases the file lock held by bbolt.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
