// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer messages used by the
// pass-guard command line.
//
// All Msg* constants are human-readable strings printed to the user in place
// of the wrapped error chain. Keeping them in one place ensures consistent
// wording across commands and the interactive shell.
package app

import (
	"errors"

	"github.com/MKhiriev/go-pass-guard/internal/client"
	"github.com/MKhiriev/go-pass-guard/internal/crypto"
	"github.com/MKhiriev/go-pass-guard/internal/lock"
	"github.com/MKhiriev/go-pass-guard/internal/service"
	"github.com/MKhiriev/go-pass-guard/internal/store"
	"github.com/MKhiriev/go-pass-guard/internal/transfer"
	"github.com/MKhiriev/go-pass-guard/internal/validators"
)

const (
	// MsgVaultLocked is shown when a command needs the vault unlocked.
	MsgVaultLocked = "vault is locked"

	// MsgNoPinSet is shown before the first `pin set`.
	MsgNoPinSet = "no PIN set, run `pin set` first"

	// MsgWrongPin is shown after every PIN prompt failed.
	MsgWrongPin = "wrong PIN"

	// MsgTooManyAttempts is shown when the PIN attempt limit is reached.
	MsgTooManyAttempts = "too many PIN attempts, try again in a minute"

	// MsgEntriesDoNotMatch is shown when a repeated PIN or passphrase differs.
	MsgEntriesDoNotMatch = "entries do not match"

	// MsgInvalidPin is shown for a PIN that is not 4 to 8 digits.
	MsgInvalidPin = "PIN must be 4 to 8 digits"

	// MsgInvalidDataProvided is shown when no backup passphrase was given.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgDataNotFound is shown for an unknown credential or category id.
	MsgDataNotFound = "data not found"

	// MsgDataUnreadable is shown when a stored secret fails to decrypt.
	MsgDataUnreadable = "stored data could not be decrypted"

	// MsgKeyUnavailable is shown when the device key is gone; secrets
	// encrypted with it cannot be recovered.
	MsgKeyUnavailable = "device encryption key is unavailable"

	// MsgClipboardUnavailable is shown on hosts without a clipboard.
	MsgClipboardUnavailable = "clipboard is unavailable on this system"

	// MsgUnsupportedBackup is shown for a backup written by a newer version.
	MsgUnsupportedBackup = "unsupported backup version"

	// MsgWrongPassphrase is shown when a backup cannot be decrypted.
	MsgWrongPassphrase = "wrong passphrase or corrupt backup file"

	// MsgMalformedBackup is shown when a decrypted backup holds invalid
	// records. Nothing is imported.
	MsgMalformedBackup = "backup contents are invalid, nothing was imported"

	// MsgStoreBusy is shown when another process holds the vault database.
	MsgStoreBusy = "vault is busy, try again"
)

// UserMessage returns the message to print for err. Errors without a known
// cause, validation errors included, are printed as is.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrVaultLocked):
		return MsgVaultLocked
	case errors.Is(err, client.ErrNoPin):
		return MsgNoPinSet
	case errors.Is(err, client.ErrWrongPin):
		return MsgWrongPin
	case errors.Is(err, lock.ErrTooManyAttempts):
		return MsgTooManyAttempts
	case errors.Is(err, client.ErrConfirmationMismatch):
		return MsgEntriesDoNotMatch
	case errors.Is(err, validators.ErrInvalidPin):
		return MsgInvalidPin
	case errors.Is(err, transfer.ErrUnsupportedVersion):
		return MsgUnsupportedBackup
	case errors.Is(err, transfer.ErrWrongPasswordOrCorruptFile):
		return MsgWrongPassphrase
	case errors.Is(err, transfer.ErrMalformedBackup):
		return MsgMalformedBackup
	case errors.Is(err, transfer.ErrInvalidInput):
		return MsgInvalidDataProvided + ": empty passphrase"
	case errors.Is(err, service.ErrNotFound):
		return MsgDataNotFound
	case errors.Is(err, crypto.ErrKeyUnavailable):
		return MsgKeyUnavailable
	case errors.Is(err, crypto.ErrAuthentication):
		return MsgDataUnreadable
	case errors.Is(err, service.ErrClipboardUnavailable):
		return MsgClipboardUnavailable
	case errors.Is(err, store.ErrStoreBusy):
		return MsgStoreBusy
	}

	return err.Error()
}
