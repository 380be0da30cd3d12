// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// LockState is the authentication state of the vault.
type LockState int

const (
	// NoPinSet means no PIN credential is persisted; the vault cannot be
	// locked until one is set.
	NoPinSet LockState = iota
	// Locked means a PIN exists and the user has not authenticated.
	Locked
	// Unlocked means the user authenticated and secrets may be revealed.
	Unlocked
)

// String implements [fmt.Stringer].
func (s LockState) String() string {
	switch s {
	case NoPinSet:
		return "no_pin_set"
	case Locked:
		return "locked"
	case Unlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// PinCredential is the persisted PIN material.
//
// Hash is always PBKDF2-HMAC-SHA256(pin, Salt) with a fixed iteration count.
// Salt is regenerated on every PIN set, so two credentials for the same PIN
// never share a hash.
type PinCredential struct {
	Hash []byte `json:"hash"`
	Salt []byte `json:"salt"`

	// LastUnlockTimestamp is unix millis of the last successful unlock;
	// zero means the vault was never unlocked with this credential.
	LastUnlockTimestamp int64 `json:"last_unlock"`

	AutoLockTimeoutMinutes int32 `json:"auto_lock_timeout_minutes"`
}

// UserSettings are the user-adjustable vault preferences.
type UserSettings struct {
	AutoLockTimeoutMinutes int32 `json:"auto_lock_timeout_minutes"`
	ClipboardClearSeconds  int32 `json:"clipboard_clear_seconds"`
}
