package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
)

// Defaults applied to fields left empty by every configuration source.
const (
	DefaultKeyAlias               = "pass_guard_field_key"
	DefaultLogLevel               = "info"
	DefaultAutoLockMinutes  int32 = 1
	DefaultClipboardClear         = 30 * time.Second
	DefaultAutoLockInterval       = 15 * time.Second

	defaultDataDirName = "go-pass-guard"
	dbFileName         = "vault.db"
	kvFileName         = "settings.db"
	keysDirName        = "keys"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// DataDir is the root directory for every vault file.
	DataDir string
	// KeyAlias is the key vault alias used for credential fields.
	KeyAlias string
	// LogLevel is a zerolog level name.
	LogLevel string
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string used by the client.
	DSN string
}

// ClientKV contains key/value store settings for the client.
type ClientKV struct {
	// Path is the bbolt file path.
	Path string
}

// ClientKeys contains key vault settings for the client.
type ClientKeys struct {
	// Dir is the directory where vault keys are persisted.
	Dir string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
	// KV holds key/value store settings.
	KV ClientKV
	// Keys holds key vault settings.
	Keys ClientKeys
}

// ClientLock contains the lock policy.
type ClientLock struct {
	// DefaultAutoLockMinutes applies until the user sets a timeout.
	DefaultAutoLockMinutes int32
	// MaxPinAttemptsPerMinute limits PIN checks; zero means unlimited.
	MaxPinAttemptsPerMinute int
}

// ClientClipboard contains secure clipboard settings.
type ClientClipboard struct {
	// ClearAfter is how long a copied secret stays on the clipboard.
	ClearAfter time.Duration
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// AutoLockInterval defines how often the auto-lock job runs.
	AutoLockInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Storage contains client storage settings.
	Storage ClientStorage
	// Lock contains the auto-lock and PIN attempt policy.
	Lock ClientLock
	// Clipboard contains secure clipboard settings.
	Clipboard ClientClipboard
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates the client config.
//
// It merges env, the flags in fs (may be nil) and the optional config file,
// fills empty fields with defaults derived from the data directory, and
// validates the resulting [ClientConfig].
func GetClientConfig(fs *pflag.FlagSet) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags(fs).
		withFile().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	if err = cfg.applyDefaults(); err != nil {
		return nil, err
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			DataDir:  cfg.App.DataDir,
			KeyAlias: cfg.App.KeyAlias,
			LogLevel: cfg.App.LogLevel,
		},
		Storage: ClientStorage{
			DB:   ClientDB{DSN: cfg.Storage.DB.DSN},
			KV:   ClientKV{Path: cfg.Storage.KV.Path},
			Keys: ClientKeys{Dir: cfg.Storage.Keys.Dir},
		},
		Lock: ClientLock{
			DefaultAutoLockMinutes:  cfg.Lock.DefaultAutoLockMinutes,
			MaxPinAttemptsPerMinute: cfg.Lock.MaxPinAttemptsPerMinute,
		},
		Clipboard: ClientClipboard{ClearAfter: cfg.Clipboard.ClearAfter},
		Workers:   ClientWorkers{AutoLockInterval: cfg.Workers.AutoLockInterval},
	}

	return clientCfg, clientCfg.validate()
}

// applyDefaults fills every empty field. Storage paths live under DataDir.
func (cfg *StructuredConfig) applyDefaults() error {
	if cfg.App.DataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("%w: no data dir and no user config dir: %w", ErrInvalidAppConfigs, err)
		}
		cfg.App.DataDir = filepath.Join(base, defaultDataDirName)
	}

	setDefault(&cfg.App.KeyAlias, DefaultKeyAlias)
	setDefault(&cfg.App.LogLevel, DefaultLogLevel)
	setDefault(&cfg.Storage.DB.DSN, filepath.Join(cfg.App.DataDir, dbFileName))
	setDefault(&cfg.Storage.KV.Path, filepath.Join(cfg.App.DataDir, kvFileName))
	setDefault(&cfg.Storage.Keys.Dir, filepath.Join(cfg.App.DataDir, keysDirName))
	setDefault(&cfg.Lock.DefaultAutoLockMinutes, DefaultAutoLockMinutes)
	setDefault(&cfg.Clipboard.ClearAfter, DefaultClipboardClear)
	setDefault(&cfg.Workers.AutoLockInterval, DefaultAutoLockInterval)

	return nil
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}
