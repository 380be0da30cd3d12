// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks the merged [StructuredConfig] for values no source may set,
// before defaults are applied.
func (cfg *StructuredConfig) validate() error {
	if cfg.Lock.DefaultAutoLockMinutes < 0 || cfg.Lock.MaxPinAttemptsPerMinute < 0 {
		return fmt.Errorf("%w: negative lock values", ErrInvalidLockConfigs)
	}

	if cfg.Clipboard.ClearAfter < 0 || cfg.Workers.AutoLockInterval < 0 {
		return fmt.Errorf("%w: negative durations", ErrInvalidWorkerConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.App.DataDir == "" || cfg.App.KeyAlias == "" {
		return ErrInvalidAppConfigs
	}

	// an in-memory record store would silently lose the vault on exit
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Storage.KV.Path == "" || cfg.Storage.Keys.Dir == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Lock.DefaultAutoLockMinutes < 1 || cfg.Lock.MaxPinAttemptsPerMinute < 0 {
		return ErrInvalidLockConfigs
	}

	if cfg.Workers.AutoLockInterval <= 0 || cfg.Clipboard.ClearAfter <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
