package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// StructuredFileConfig is the on-disk shape of a JSON or YAML config file.
type StructuredFileConfig struct {
	App struct {
		DataDir  string `json:"data_dir" yaml:"data_dir"`
		KeyAlias string `json:"key_alias" yaml:"key_alias"`
		LogLevel string `json:"log_level" yaml:"log_level"`
	} `json:"app,omitempty" yaml:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"db,omitempty" yaml:"db,omitempty"`

		KV struct {
			Path string `json:"path" yaml:"path"`
		} `json:"kv,omitempty" yaml:"kv,omitempty"`

		Keys struct {
			Dir string `json:"dir" yaml:"dir"`
		} `json:"keys,omitempty" yaml:"keys,omitempty"`
	} `json:"storage,omitempty" yaml:"storage,omitempty"`

	Lock struct {
		DefaultAutoLockMinutes  int32 `json:"default_auto_lock_minutes" yaml:"default_auto_lock_minutes"`
		MaxPinAttemptsPerMinute int   `json:"max_pin_attempts_per_minute" yaml:"max_pin_attempts_per_minute"`
	} `json:"lock,omitempty" yaml:"lock,omitempty"`

	Clipboard struct {
		ClearAfter Duration `json:"clear_after" yaml:"clear_after"`
	} `json:"clipboard,omitempty" yaml:"clipboard,omitempty"`

	Workers struct {
		AutoLockInterval Duration `json:"auto_lock_interval" yaml:"auto_lock_interval"`
	} `json:"workers,omitempty" yaml:"workers,omitempty"`
}

func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fileCfg StructuredFileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &fileCfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fileCfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedConfigFile, path)
	}
	if err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			DataDir:  fileCfg.App.DataDir,
			KeyAlias: fileCfg.App.KeyAlias,
			LogLevel: fileCfg.App.LogLevel,
		},
		Storage: Storage{
			DB:   DB{DSN: fileCfg.Storage.DB.DSN},
			KV:   KV{Path: fileCfg.Storage.KV.Path},
			Keys: Keys{Dir: fileCfg.Storage.Keys.Dir},
		},
		Lock: Lock{
			DefaultAutoLockMinutes:  fileCfg.Lock.DefaultAutoLockMinutes,
			MaxPinAttemptsPerMinute: fileCfg.Lock.MaxPinAttemptsPerMinute,
		},
		Clipboard: Clipboard{ClearAfter: time.Duration(fileCfg.Clipboard.ClearAfter)},
		Workers:   Workers{AutoLockInterval: time.Duration(fileCfg.Workers.AutoLockInterval)},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON and YAML
// unmarshaling from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var n int64
	if err := value.Decode(&n); err == nil {
		*d = Duration(time.Duration(n))
		return nil
	}

	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	tmp, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}
