// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package lock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-pass-guard/internal/config"
	"github.com/MKhiriev/go-pass-guard/internal/crypto"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/store"
	"github.com/MKhiriev/go-pass-guard/internal/validators"
	"github.com/MKhiriev/go-pass-guard/models"
)

// Keys inside [store.LockBucket].
const (
	pinCredentialKey  = "pin_credential"
	timeoutMinutesKey = "timeout_minutes"
)

// DefaultTimeoutMinutes is used when neither the user nor the config set an
// auto-lock timeout.
const DefaultTimeoutMinutes int32 = 1

// StateMachine owns the vault lock state. All mutating calls are serialized;
// every observer returned by Subscribe has received the new state by the
// time a mutating call returns.
type StateMachine struct {
	kv             store.KeyValueStore
	pinValidator   validators.Validator
	defaultTimeout int32
	limiter        *rate.Limiter
	now            func() time.Time
	logger         *logger.Logger

	mu          sync.Mutex
	state       models.LockState
	broadcaster *broadcaster
}

// NewStateMachine loads the persisted credential from kv and starts in
// Locked if one exists, NoPinSet otherwise.
func NewStateMachine(ctx context.Context, kv store.KeyValueStore, cfg config.ClientLock, log *logger.Logger) (*StateMachine, error) {
	m := &StateMachine{
		kv:             kv,
		pinValidator:   validators.NewPinValidator(),
		defaultTimeout: cfg.DefaultAutoLockMinutes,
		now:            time.Now,
		logger:         log,
		broadcaster:    newBroadcaster(),
	}
	if m.defaultTimeout <= 0 {
		m.defaultTimeout = DefaultTimeoutMinutes
	}
	if cfg.MaxPinAttemptsPerMinute > 0 {
		m.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.MaxPinAttemptsPerMinute)), cfg.MaxPinAttemptsPerMinute)
	}

	cred, err := m.loadCredential(ctx)
	if err != nil {
		return nil, err
	}
	if cred != nil {
		m.state = models.Locked
	}

	log.Debug().Str("func", "NewStateMachine").Stringer("state", m.state).Msg("lock state loaded")
	return m, nil
}

// State returns the current state.
func (m *StateMachine) State() models.LockState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe returns a channel that yields the current state immediately and
// then every transition. Intermediate states are dropped for readers that
// fall behind; the latest one is always delivered. The channel is closed
// when ctx is done; a subscription on a context that is never cancelled
// stays registered for the life of m.
func (m *StateMachine) Subscribe(ctx context.Context) <-chan models.LockState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.broadcaster.subscribe(ctx, m.state)
}

// SetPin replaces the PIN credential with a fresh salt and hash and moves to
// Locked. The last unlock time is reset.
func (m *StateMachine) SetPin(ctx context.Context, pin string) error {
	if err := m.pinValidator.Validate(ctx, pin); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	salt, err := crypto.GenerateSalt()
	if err != nil {
		return fmt.Errorf("generate pin salt: %w", err)
	}
	hash := crypto.HashPin(pin, salt)

	m.mu.Lock()
	defer m.mu.Unlock()

	timeout, err := m.loadTimeout(ctx)
	if err != nil {
		return err
	}

	cred := models.PinCredential{Hash: hash, Salt: salt, AutoLockTimeoutMinutes: timeout}
	if err = m.saveCredential(ctx, cred); err != nil {
		return err
	}

	m.logger.Info().Str("func", "StateMachine.SetPin").Msg("pin credential set")
	m.transition(models.Locked)
	return nil
}

// ValidatePin checks pin against the stored credential. On a match the last
// unlock time is recorded, the vault becomes Unlocked and true is returned.
// A mismatch or a missing credential returns false and changes nothing.
func (m *StateMachine) ValidatePin(ctx context.Context, pin string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.limiter != nil && !m.limiter.AllowN(m.now(), 1) {
		m.logger.Warn().Str("func", "StateMachine.ValidatePin").Msg("pin attempt rejected by limiter")
		return false, ErrTooManyAttempts
	}

	cred, err := m.loadCredential(ctx)
	if err != nil {
		return false, err
	}
	if cred == nil {
		return false, nil
	}

	if !crypto.VerifyPin(pin, cred.Salt, cred.Hash) {
		m.logger.Info().Str("func", "StateMachine.ValidatePin").Msg("pin mismatch")
		return false, nil
	}

	cred.LastUnlockTimestamp = m.now().UnixMilli()
	if err = m.saveCredential(ctx, *cred); err != nil {
		return false, err
	}

	m.transition(models.Unlocked)
	return true, nil
}

// Unlock is the already-authenticated path (e.g. the platform confirmed the
// user). With a credential it records the unlock time and moves to Unlocked;
// without one it moves to NoPinSet.
func (m *StateMachine) Unlock(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cred, err := m.loadCredential(ctx)
	if err != nil {
		return err
	}
	if cred == nil {
		m.transition(models.NoPinSet)
		return nil
	}

	cred.LastUnlockTimestamp = m.now().UnixMilli()
	if err = m.saveCredential(ctx, *cred); err != nil {
		return err
	}

	m.transition(models.Unlocked)
	return nil
}

// Lock moves to Locked, or to NoPinSet when no credential exists.
func (m *StateMachine) Lock(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cred, err := m.loadCredential(ctx)
	if err != nil {
		return err
	}
	if cred == nil {
		m.transition(models.NoPinSet)
		return nil
	}

	m.transition(models.Locked)
	return nil
}

// ClearPin deletes the credential and moves to NoPinSet. The timeout
// preference is kept.
func (m *StateMachine) ClearPin(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.kv.Delete(ctx, store.LockBucket, pinCredentialKey); err != nil {
		return fmt.Errorf("delete pin credential: %w", err)
	}

	m.logger.Info().Str("func", "StateMachine.ClearPin").Msg("pin credential cleared")
	m.transition(models.NoPinSet)
	return nil
}

// ShouldAutoLock reports whether the auto-lock timeout has passed since the
// last unlock. It is true when the vault was never unlocked.
func (m *StateMachine) ShouldAutoLock(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	timeout, err := m.loadTimeout(ctx)
	if err != nil {
		return false, err
	}
	cred, err := m.loadCredential(ctx)
	if err != nil {
		return false, err
	}

	if cred == nil || cred.LastUnlockTimestamp == 0 {
		return true, nil
	}

	elapsed := m.now().UnixMilli() - cred.LastUnlockTimestamp
	return elapsed > int64(timeout)*time.Minute.Milliseconds(), nil
}

// Timeout returns the effective auto-lock timeout in minutes.
func (m *StateMachine) Timeout(ctx context.Context) (int32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadTimeout(ctx)
}

// UpdateTimeout persists the auto-lock timeout. The stored credential, if
// any, is rewritten in the same transaction so both always agree.
func (m *StateMachine) UpdateTimeout(ctx context.Context, minutes int32) error {
	if minutes <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %d", ErrInvalidInput, minutes)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	values := map[string][]byte{
		timeoutMinutesKey: []byte(strconv.FormatInt(int64(minutes), 10)),
	}

	cred, err := m.loadCredential(ctx)
	if err != nil {
		return err
	}
	if cred != nil {
		cred.AutoLockTimeoutMinutes = minutes
		raw, err := json.Marshal(cred)
		if err != nil {
			return fmt.Errorf("encode pin credential: %w", err)
		}
		values[pinCredentialKey] = raw
	}

	if err = m.kv.PutAll(ctx, store.LockBucket, values); err != nil {
		return fmt.Errorf("save auto-lock timeout: %w", err)
	}

	m.logger.Info().Str("func", "StateMachine.UpdateTimeout").Int32("minutes", minutes).Msg("auto-lock timeout updated")
	return nil
}

// transition must be called with m.mu held.
func (m *StateMachine) transition(next models.LockState) {
	if m.state == next {
		return
	}

	m.logger.Debug().Stringer("from", m.state).Stringer("to", next).Msg("lock state transition")
	m.state = next
	m.broadcaster.publish(next)
}

// loadCredential returns nil without error when no credential is stored.
func (m *StateMachine) loadCredential(ctx context.Context) (*models.PinCredential, error) {
	raw, err := m.kv.Get(ctx, store.LockBucket, pinCredentialKey)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load pin credential: %w", err)
	}

	var cred models.PinCredential
	if err = json.Unmarshal(raw, &cred); err != nil {
		return nil, fmt.Errorf("decode pin credential: %w", err)
	}
	if len(cred.Hash) == 0 {
		return nil, nil
	}

	return &cred, nil
}

func (m *StateMachine) saveCredential(ctx context.Context, cred models.PinCredential) error {
	raw, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("encode pin credential: %w", err)
	}
	if err = m.kv.Put(ctx, store.LockBucket, pinCredentialKey, raw); err != nil {
		return fmt.Errorf("save pin credential: %w", err)
	}
	return nil
}

func (m *StateMachine) loadTimeout(ctx context.Context) (int32, error) {
	raw, err := m.kv.Get(ctx, store.LockBucket, timeoutMinutesKey)
	if errors.Is(err, store.ErrKeyNotFound) {
		return m.defaultTimeout, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load auto-lock timeout: %w", err)
	}

	minutes, err := strconv.ParseInt(string(raw), 10, 32)
	if err != nil || minutes <= 0 {
		m.logger.Warn().Str("func", "StateMachine.loadTimeout").Msg("stored timeout is invalid, using default")
		return m.defaultTimeout, nil
	}

	return int32(minutes), nil
}
