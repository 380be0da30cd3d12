// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allEnvVars = []string{
	"PASS_GUARD_CONFIG",
	"PASS_GUARD_APP_DATA_DIR",
	"PASS_GUARD_APP_KEY_ALIAS",
	"PASS_GUARD_APP_LOG_LEVEL",
	"PASS_GUARD_STORAGE_DB_DSN",
	"PASS_GUARD_STORAGE_KV_PATH",
	"PASS_GUARD_STORAGE_KEYS_DIR",
	"PASS_GUARD_LOCK_DEFAULT_AUTO_LOCK_MINUTES",
	"PASS_GUARD_LOCK_MAX_PIN_ATTEMPTS_PER_MINUTE",
	"PASS_GUARD_CLIPBOARD_CLEAR_AFTER",
	"PASS_GUARD_WORKERS_AUTO_LOCK_INTERVAL",
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

// clearEnvVars blanks every config variable for the duration of the test.
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, k := range allEnvVars {
		t.Setenv(k, "")
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"PASS_GUARD_CONFIG": "/path/to/config.yaml",

		"PASS_GUARD_APP_DATA_DIR":  "/data",
		"PASS_GUARD_APP_KEY_ALIAS": "alias",
		"PASS_GUARD_APP_LOG_LEVEL": "debug",

		"PASS_GUARD_STORAGE_DB_DSN":   "/data/v.db",
		"PASS_GUARD_STORAGE_KV_PATH":  "/data/kv.db",
		"PASS_GUARD_STORAGE_KEYS_DIR": "/data/keys",

		"PASS_GUARD_LOCK_DEFAULT_AUTO_LOCK_MINUTES":   "5",
		"PASS_GUARD_LOCK_MAX_PIN_ATTEMPTS_PER_MINUTE": "3",
		"PASS_GUARD_CLIPBOARD_CLEAR_AFTER":            "45s",
		"PASS_GUARD_WORKERS_AUTO_LOCK_INTERVAL":       "2s",
	})

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.yaml", cfg.ConfigFilePath)
	assert.Equal(t, "/data", cfg.App.DataDir)
	assert.Equal(t, "alias", cfg.App.KeyAlias)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "/data/v.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/data/kv.db", cfg.Storage.KV.Path)
	assert.Equal(t, "/data/keys", cfg.Storage.Keys.Dir)
	assert.Equal(t, int32(5), cfg.Lock.DefaultAutoLockMinutes)
	assert.Equal(t, 3, cfg.Lock.MaxPinAttemptsPerMinute)
	assert.Equal(t, 45*time.Second, cfg.Clipboard.ClearAfter)
	assert.Equal(t, 2*time.Second, cfg.Workers.AutoLockInterval)
}

func TestParseEnv_Empty(t *testing.T) {
	clearEnvVars(t)

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "bad minutes", key: "PASS_GUARD_LOCK_DEFAULT_AUTO_LOCK_MINUTES", val: "soon"},
		{name: "bad duration", key: "PASS_GUARD_CLIPBOARD_CLEAR_AFTER", val: "30 parsecs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnvVars(t, map[string]string{tt.key: tt.val})

			err := parseEnv(&StructuredConfig{})
			assert.Error(t, err)
		})
	}
}
