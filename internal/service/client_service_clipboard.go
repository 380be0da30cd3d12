package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/atotto/clipboard"

	"github.com/MKhiriev/go-pass-guard/internal/logger"
)

// clipboardBackend is the system clipboard.
type clipboardBackend interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

type clipboardService struct {
	backend  clipboardBackend
	settings SettingsService
	now      func() time.Time
	logger   *logger.Logger

	wg sync.WaitGroup
}

func NewClipboardService(settings SettingsService, logger *logger.Logger) ClipboardService {
	return newClipboardService(systemClipboard{}, settings, logger)
}

func newClipboardService(backend clipboardBackend, settings SettingsService, logger *logger.Logger) *clipboardService {
	return &clipboardService{
		backend:  backend,
		settings: settings,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *clipboardService) Copy(ctx context.Context, text string) (time.Time, error) {
	if clipboard.Unsupported {
		if _, ok := s.backend.(systemClipboard); ok {
			return time.Time{}, ErrClipboardUnavailable
		}
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return time.Time{}, err
	}
	delay := time.Duration(settings.ClipboardClearSeconds) * time.Second

	if err = s.backend.WriteAll(text); err != nil {
		s.logger.Err(err).Str("func", "clipboardService.Copy").Msg("failed to write clipboard")
		return time.Time{}, fmt.Errorf("%w: %w", ErrClipboardUnavailable, err)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		t := time.NewTimer(delay)
		defer t.Stop()

		select {
		case <-t.C:
		case <-ctx.Done():
		}
		s.clearIfUnchanged(text)
	}()

	return s.now().Add(delay), nil
}

func (s *clipboardService) Wait() {
	s.wg.Wait()
}

// clearIfUnchanged leaves the clipboard alone once the user copied
// something else.
func (s *clipboardService) clearIfUnchanged(text string) {
	current, err := s.backend.ReadAll()
	if err != nil {
		s.logger.Err(err).Str("func", "clipboardService.clearIfUnchanged").Msg("failed to read clipboard")
		return
	}
	if current != text {
		return
	}

	if err = s.backend.WriteAll(""); err != nil {
		s.logger.Err(err).Str("func", "clipboardService.clearIfUnchanged").Msg("failed to clear clipboard")
		return
	}
	s.logger.Debug().Str("func", "clipboardService.clearIfUnchanged").Msg("clipboard cleared")
}
