// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "PASS_GUARD_"

// StructuredConfig is the top-level configuration container for the
// go-pass-guard client. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional config file.
//
// Struct tags:
//   - envPrefix - prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       - direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the data directory and the field key alias.
	App App `envPrefix:"APP_"`

	// Storage holds the locations of the record store, the key/value store
	// and the key vault.
	Storage Storage `envPrefix:"STORAGE_"`

	// Lock holds the auto-lock and PIN attempt policy.
	Lock Lock `envPrefix:"LOCK_"`

	// Clipboard holds secure clipboard settings.
	Clipboard Clipboard `envPrefix:"CLIPBOARD_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// ConfigFilePath is the optional path to a JSON or YAML configuration
	// file. When non-empty, the file is parsed and merged under the values
	// already loaded from environment variables and flags.
	// Populated via the PASS_GUARD_CONFIG environment variable or the
	// -c / --config flag.
	ConfigFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// DataDir is the directory every default storage path is derived from.
	// Env: PASS_GUARD_APP_DATA_DIR
	DataDir string `env:"DATA_DIR"`

	// KeyAlias is the key vault alias under which credential fields are
	// encrypted.
	// Env: PASS_GUARD_APP_KEY_ALIAS
	KeyAlias string `env:"KEY_ALIAS"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: PASS_GUARD_APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the SQLite record store settings.
	DB DB `envPrefix:"DB_"`

	// KV holds the bbolt key/value store settings.
	KV KV `envPrefix:"KV_"`

	// Keys holds the key vault settings.
	Keys Keys `envPrefix:"KEYS_"`
}

// DB holds the record store connection settings.
type DB struct {
	// DSN is the SQLite file path or DSN.
	// Env: PASS_GUARD_STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// KV holds the key/value store settings.
type KV struct {
	// Path is the bbolt file path.
	// Env: PASS_GUARD_STORAGE_KV_PATH
	Path string `env:"PATH"`
}

// Keys holds the key vault settings.
type Keys struct {
	// Dir is the directory where vault keys are persisted.
	// Env: PASS_GUARD_STORAGE_KEYS_DIR
	Dir string `env:"DIR"`
}

// Lock holds the lock policy.
type Lock struct {
	// DefaultAutoLockMinutes applies until the user sets a timeout.
	// Env: PASS_GUARD_LOCK_DEFAULT_AUTO_LOCK_MINUTES
	DefaultAutoLockMinutes int32 `env:"DEFAULT_AUTO_LOCK_MINUTES"`

	// MaxPinAttemptsPerMinute limits PIN checks; zero means unlimited.
	// Env: PASS_GUARD_LOCK_MAX_PIN_ATTEMPTS_PER_MINUTE
	MaxPinAttemptsPerMinute int `env:"MAX_PIN_ATTEMPTS_PER_MINUTE"`
}

// Clipboard holds secure clipboard settings.
type Clipboard struct {
	// ClearAfter is how long a copied secret stays on the clipboard.
	// Env: PASS_GUARD_CLIPBOARD_CLEAR_AFTER
	ClearAfter time.Duration `env:"CLEAR_AFTER"`
}

// Workers holds background worker settings.
type Workers struct {
	// AutoLockInterval is how often the auto-lock job checks the timeout.
	// Env: PASS_GUARD_WORKERS_AUTO_LOCK_INTERVAL
	AutoLockInterval time.Duration `env:"AUTO_LOCK_INTERVAL"`
}
