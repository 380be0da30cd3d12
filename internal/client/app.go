package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/MKhiriev/go-pass-guard/internal/config"
	"github.com/MKhiriev/go-pass-guard/internal/crypto"
	"github.com/MKhiriev/go-pass-guard/internal/lock"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/service"
	"github.com/MKhiriev/go-pass-guard/internal/store"
	"github.com/MKhiriev/go-pass-guard/internal/transfer"
	"github.com/MKhiriev/go-pass-guard/internal/workers"
	"github.com/MKhiriev/go-pass-guard/models"
)

// maxPinPrompts is how many times Unlock asks for the PIN.
const maxPinPrompts = 3

type App struct {
	Services *service.ClientServices

	storages *store.ClientStorages
	workers  *workers.Workers
	prompter Prompter
	logger   *logger.Logger

	outMu sync.Mutex
	out   io.Writer
}

// NewApp opens the vault described by cfg. The vault starts Locked, or
// NoPinSet when no PIN was ever set.
func NewApp(ctx context.Context, cfg *config.ClientConfig, prompter Prompter, out io.Writer, log *logger.Logger) (*App, error) {
	if err := os.MkdirAll(cfg.App.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create client storages: %w", err)
	}

	keyVault, err := crypto.NewLocalKeyVault(cfg.Storage.Keys.Dir, log)
	if err != nil {
		storages.Close()
		return nil, fmt.Errorf("open key vault: %w", err)
	}
	fieldCrypto := crypto.NewFieldCryptoManager(keyVault, cfg.App.KeyAlias, log)

	stateMachine, err := lock.NewStateMachine(ctx, storages.KV, cfg.Lock, log)
	if err != nil {
		storages.Close()
		return nil, fmt.Errorf("create lock state machine: %w", err)
	}

	codec := transfer.NewCodec(storages, log)
	services := service.NewClientServices(cfg, storages, stateMachine, fieldCrypto, codec, log)

	return &App{
		Services: services,
		storages: storages,
		workers:  workers.NewWorkers(services.AutoLockJob),
		prompter: prompter,
		out:      out,
		logger:   log,
	}, nil
}

// Unlock prompts for the PIN until it matches, up to maxPinPrompts times.
// It is a no-op when the vault is already unlocked.
func (a *App) Unlock(ctx context.Context) error {
	switch a.Services.Lock.State() {
	case models.Unlocked:
		return nil
	case models.NoPinSet:
		return ErrNoPin
	}

	for range maxPinPrompts {
		pin, err := a.prompter.ReadSecret("PIN: ")
		if err != nil {
			return err
		}

		ok, err := a.Services.Lock.ValidatePin(ctx, pin)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		a.printf("Wrong PIN.\n")
	}

	a.logger.Warn().Str("func", "App.Unlock").Msg("pin prompts exhausted")
	return ErrWrongPin
}

// SetPin asks for a new PIN twice and stores it. Replacing an existing PIN
// requires the current one first.
func (a *App) SetPin(ctx context.Context) error {
	if a.Services.Lock.State() != models.NoPinSet {
		if err := a.Unlock(ctx); err != nil {
			return err
		}
	}

	pin, err := a.ReadConfirmed("New PIN: ", "Repeat PIN: ")
	if err != nil {
		return err
	}

	return a.Services.Lock.SetPin(ctx, pin)
}

// ClearPin removes the PIN after checking it.
func (a *App) ClearPin(ctx context.Context) error {
	if err := a.Unlock(ctx); err != nil {
		return err
	}
	return a.Services.Lock.ClearPin(ctx)
}

// ReadSecret prompts for a single secret.
func (a *App) ReadSecret(prompt string) (string, error) {
	return a.prompter.ReadSecret(prompt)
}

// ReadConfirmed prompts for a secret twice and fails unless both match.
func (a *App) ReadConfirmed(prompt, repeat string) (string, error) {
	first, err := a.prompter.ReadSecret(prompt)
	if err != nil {
		return "", err
	}
	second, err := a.prompter.ReadSecret(repeat)
	if err != nil {
		return "", err
	}
	if first != second {
		return "", ErrConfirmationMismatch
	}
	return first, nil
}

// RunShell reads commands line by line and hands each one to exec until the
// input ends or the user types exit. The auto-lock job runs for the
// lifetime of the shell and every move from unlocked to locked is
// announced. Command errors are printed and do not end the shell.
func (a *App) RunShell(ctx context.Context, exec func(ctx context.Context, args []string) error) error {
	watchCtx, stopWatch := context.WithCancel(ctx)
	states := a.Services.Lock.Subscribe(watchCtx)
	current := <-states

	var watch sync.WaitGroup
	watch.Add(1)
	go func() {
		defer watch.Done()
		a.announceLocks(states, current)
	}()
	defer func() {
		stopWatch()
		watch.Wait()
	}()

	a.workers.Start(ctx)
	defer a.workers.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := a.prompter.ReadLine(fmt.Sprintf("pass-guard (%s)> ", a.Services.Lock.State()))
		if errors.Is(err, io.EOF) {
			a.printf("\n")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read command: %w", err)
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			return nil
		}

		if err = exec(ctx, args); err != nil {
			a.printf("Error: %v\n", err)
		}
	}
}

// announceLocks prints a notice for every move from unlocked to locked
// until states is closed.
func (a *App) announceLocks(states <-chan models.LockState, prev models.LockState) {
	for s := range states {
		if prev == models.Unlocked && s == models.Locked {
			a.printf("Vault locked.\n")
			a.logger.Info().Str("func", "App.announceLocks").Msg("vault locked during shell session")
		}
		prev = s
	}
}

func (a *App) printf(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

// Close waits for pending clipboard clears, locks the vault and closes the
// storages.
func (a *App) Close(ctx context.Context) error {
	a.workers.Stop()
	a.Services.ClipboardService.Wait()

	var errs []error
	if err := a.Services.Lock.Lock(ctx); err != nil {
		errs = append(errs, fmt.Errorf("lock vault: %w", err))
	}
	if err := a.storages.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close storages: %w", err))
	}
	return errors.Join(errs...)
}
