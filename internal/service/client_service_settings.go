package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/store"
	"github.com/MKhiriev/go-pass-guard/models"
)

const clipboardClearKey = "clipboard_clear_seconds"

// maxClipboardClearSeconds bounds the clipboard delay to ten minutes.
const maxClipboardClearSeconds = 600

type settingsService struct {
	kv                    store.KeyValueStore
	lock                  VaultLock
	defaultClipboardClear time.Duration
	logger                *logger.Logger
}

// NewSettingsService returns a SettingsService. The auto-lock timeout is
// owned by lock; the clipboard delay lives in the settings bucket of kv and
// falls back to defaultClipboardClear.
func NewSettingsService(kv store.KeyValueStore, lock VaultLock, defaultClipboardClear time.Duration, logger *logger.Logger) SettingsService {
	return &settingsService{
		kv:                    kv,
		lock:                  lock,
		defaultClipboardClear: defaultClipboardClear,
		logger:                logger,
	}
}

func (s *settingsService) Get(ctx context.Context) (models.UserSettings, error) {
	timeout, err := s.lock.Timeout(ctx)
	if err != nil {
		return models.UserSettings{}, fmt.Errorf("read auto-lock timeout: %w", err)
	}

	delay, err := s.clipboardClear(ctx)
	if err != nil {
		return models.UserSettings{}, err
	}

	return models.UserSettings{
		AutoLockTimeoutMinutes: timeout,
		ClipboardClearSeconds:  int32(delay / time.Second),
	}, nil
}

func (s *settingsService) SetAutoLockTimeout(ctx context.Context, minutes int32) error {
	if err := requireUnlocked(s.lock); err != nil {
		return err
	}

	if err := s.lock.UpdateTimeout(ctx, minutes); err != nil {
		return mapValidationError(err)
	}
	return nil
}

func (s *settingsService) SetClipboardClear(ctx context.Context, seconds int32) error {
	if err := requireUnlocked(s.lock); err != nil {
		return err
	}
	if seconds <= 0 || seconds > maxClipboardClearSeconds {
		return fmt.Errorf("%w: clipboard delay must be 1..%d seconds, got %d", ErrInvalidInput, maxClipboardClearSeconds, seconds)
	}

	err := s.kv.Put(ctx, store.SettingsBucket, clipboardClearKey, []byte(strconv.FormatInt(int64(seconds), 10)))
	if err != nil {
		return fmt.Errorf("save clipboard delay: %w", err)
	}

	s.logger.Info().Str("func", "settingsService.SetClipboardClear").Int32("seconds", seconds).Msg("clipboard delay updated")
	return nil
}

// clipboardClear returns the effective clipboard delay.
func (s *settingsService) clipboardClear(ctx context.Context) (time.Duration, error) {
	raw, err := s.kv.Get(ctx, store.SettingsBucket, clipboardClearKey)
	if errors.Is(err, store.ErrKeyNotFound) {
		return s.defaultClipboardClear, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read clipboard delay: %w", err)
	}

	seconds, err := strconv.ParseInt(string(raw), 10, 32)
	if err != nil || seconds <= 0 {
		s.logger.Warn().Str("func", "settingsService.clipboardClear").Msg("stored clipboard delay is invalid, using default")
		return s.defaultClipboardClear, nil
	}

	return time.Duration(seconds) * time.Second, nil
}
