package config

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
)

// Flag names registered by [RegisterFlags].
const (
	FlagDataDir          = "data-dir"
	FlagDBDSN            = "db-dsn"
	FlagKVPath           = "kv-path"
	FlagKeysDir          = "keys-dir"
	FlagKeyAlias         = "key-alias"
	FlagLogLevel         = "log-level"
	FlagAutoLockMinutes  = "auto-lock-minutes"
	FlagMaxPinAttempts   = "max-pin-attempts"
	FlagClipboardClear   = "clipboard-clear-after"
	FlagAutoLockInterval = "auto-lock-interval"
	FlagConfig           = "config"
)

// RegisterFlags defines every configuration flag on fs. The cobra root
// command calls it on its persistent flag set.
//
// Flags:
//
//	-d/--data-dir directory for all vault files
//	--db-dsn SQLite record store path
//	--kv-path bbolt settings store path
//	--keys-dir key vault directory
//	--key-alias field key alias
//	--log-level zerolog level
//	--auto-lock-minutes default auto-lock timeout
//	--max-pin-attempts PIN attempts per minute, 0 = unlimited
//	--clipboard-clear-after e.g. "30s"
//	--auto-lock-interval e.g. "15s"
//	-c/--config JSON or YAML file path with configs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagDataDir, "d", "", "Data directory")
	fs.String(FlagDBDSN, "", "Record store DSN")
	fs.String(FlagKVPath, "", "Settings store path")
	fs.String(FlagKeysDir, "", "Key vault directory")
	fs.String(FlagKeyAlias, "", "Field key alias")
	fs.String(FlagLogLevel, "", "Log level")
	fs.Int32(FlagAutoLockMinutes, 0, "Default auto-lock timeout in minutes")
	fs.Int(FlagMaxPinAttempts, 0, "Max PIN attempts per minute (0 = unlimited)")
	fs.Duration(FlagClipboardClear, 0, "Clear copied secrets after (e.g., 30s)")
	fs.Duration(FlagAutoLockInterval, 0, "Auto-lock check interval (e.g., 15s)")
	fs.StringP(FlagConfig, "c", "", "JSON or YAML config file path")
}

// ParseFlags reads the values of the flags registered by [RegisterFlags]
// from an already parsed fs. A nil fs yields an empty config.
func ParseFlags(fs *pflag.FlagSet) (*StructuredConfig, error) {
	if fs == nil {
		return &StructuredConfig{}, nil
	}

	var errs []error
	str := func(name string) string {
		v, err := fs.GetString(name)
		errs = append(errs, err)
		return v
	}

	dataDir := str(FlagDataDir)
	dsn := str(FlagDBDSN)
	kvPath := str(FlagKVPath)
	keysDir := str(FlagKeysDir)
	keyAlias := str(FlagKeyAlias)
	logLevel := str(FlagLogLevel)
	configPath := str(FlagConfig)

	autoLock, err := fs.GetInt32(FlagAutoLockMinutes)
	errs = append(errs, err)
	maxAttempts, err := fs.GetInt(FlagMaxPinAttempts)
	errs = append(errs, err)
	clearAfter, err := fs.GetDuration(FlagClipboardClear)
	errs = append(errs, err)
	autoLockInterval, err := fs.GetDuration(FlagAutoLockInterval)
	errs = append(errs, err)

	if err = errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("error reading flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			DataDir:  dataDir,
			KeyAlias: keyAlias,
			LogLevel: logLevel,
		},
		Storage: Storage{
			DB:   DB{DSN: dsn},
			KV:   KV{Path: kvPath},
			Keys: Keys{Dir: keysDir},
		},
		Lock: Lock{
			DefaultAutoLockMinutes:  autoLock,
			MaxPinAttemptsPerMinute: maxAttempts,
		},
		Clipboard:      Clipboard{ClearAfter: clearAfter},
		Workers:        Workers{AutoLockInterval: autoLockInterval},
		ConfigFilePath: configPath,
	}, nil
}
