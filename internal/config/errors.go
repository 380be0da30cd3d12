package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid client storage settings
	// (for example, empty DSN or key directory).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, missing data directory).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidLockConfigs indicates an invalid lock policy
	// (for example, a non-positive auto-lock timeout).
	ErrInvalidLockConfigs = errors.New("invalid lock configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero auto-lock interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrUnsupportedConfigFile is returned for config files that are neither
	// JSON nor YAML.
	ErrUnsupportedConfigFile = errors.New("unsupported config file format")
)
