package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseFile_JSON(t *testing.T) {
	path := writeTempConfig(t, "config.json", `{
		"app": {"data_dir": "/data", "key_alias": "alias"},
		"storage": {"db": {"dsn": "/data/v.db"}, "kv": {"path": "/data/kv.db"}, "keys": {"dir": "/data/keys"}},
		"lock": {"default_auto_lock_minutes": 4, "max_pin_attempts_per_minute": 6},
		"clipboard": {"clear_after": "20s"},
		"workers": {"auto_lock_interval": 5000000000}
	}`)

	cfg, err := parseFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/data", cfg.App.DataDir)
	assert.Equal(t, "alias", cfg.App.KeyAlias)
	assert.Equal(t, "/data/v.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/data/kv.db", cfg.Storage.KV.Path)
	assert.Equal(t, "/data/keys", cfg.Storage.Keys.Dir)
	assert.Equal(t, int32(4), cfg.Lock.DefaultAutoLockMinutes)
	assert.Equal(t, 6, cfg.Lock.MaxPinAttemptsPerMinute)
	assert.Equal(t, 20*time.Second, cfg.Clipboard.ClearAfter)
	assert.Equal(t, 5*time.Second, cfg.Workers.AutoLockInterval)
}

func TestParseFile_YAML(t *testing.T) {
	path := writeTempConfig(t, "config.yml", `
app:
  data_dir: /data
  log_level: debug
lock:
  default_auto_lock_minutes: 2
clipboard:
  clear_after: 1m
workers:
  auto_lock_interval: 10s
`)

	cfg, err := parseFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/data", cfg.App.DataDir)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, int32(2), cfg.Lock.DefaultAutoLockMinutes)
	assert.Equal(t, time.Minute, cfg.Clipboard.ClearAfter)
	assert.Equal(t, 10*time.Second, cfg.Workers.AutoLockInterval)
}

func TestParseFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") },
			wantErr: nil,
		},
		{
			name:    "unsupported extension",
			path:    func(t *testing.T) string { return writeTempConfig(t, "config.toml", "a = 1") },
			wantErr: ErrUnsupportedConfigFile,
		},
		{
			name:    "broken json",
			path:    func(t *testing.T) string { return writeTempConfig(t, "config.json", "{") },
			wantErr: nil,
		},
		{
			name: "bad yaml duration",
			path: func(t *testing.T) string {
				return writeTempConfig(t, "config.yaml", "clipboard:\n  clear_after: soon\n")
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFile(tt.path(t))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := Duration(90 * time.Second).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(b))
}
