package app

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-pass-guard/internal/client"
	"github.com/MKhiriev/go-pass-guard/internal/crypto"
	"github.com/MKhiriev/go-pass-guard/internal/lock"
	"github.com/MKhiriev/go-pass-guard/internal/service"
	"github.com/MKhiriev/go-pass-guard/internal/store"
	"github.com/MKhiriev/go-pass-guard/internal/transfer"
	"github.com/MKhiriev/go-pass-guard/internal/validators"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "locked", err: fmt.Errorf("reveal: %w", service.ErrVaultLocked), want: MsgVaultLocked},
		{name: "no pin", err: client.ErrNoPin, want: MsgNoPinSet},
		{name: "wrong pin", err: client.ErrWrongPin, want: MsgWrongPin},
		{name: "limiter", err: lock.ErrTooManyAttempts, want: MsgTooManyAttempts},
		{name: "mismatch", err: client.ErrConfirmationMismatch, want: MsgEntriesDoNotMatch},
		{name: "invalid pin", err: fmt.Errorf("%w: %w", lock.ErrInvalidInput, validators.ErrInvalidPin), want: MsgInvalidPin},
		{name: "backup version", err: fmt.Errorf("import vault: %w", transfer.ErrUnsupportedVersion), want: MsgUnsupportedBackup},
		{name: "passphrase", err: transfer.ErrWrongPasswordOrCorruptFile, want: MsgWrongPassphrase},
		{name: "malformed", err: fmt.Errorf("%w: credential at index 4: bad", transfer.ErrMalformedBackup), want: MsgMalformedBackup},
		{name: "empty passphrase", err: fmt.Errorf("%w: empty passphrase", transfer.ErrInvalidInput), want: MsgInvalidDataProvided + ": empty passphrase"},
		{name: "not found", err: fmt.Errorf("%w: %w", service.ErrNotFound, store.ErrRecordNotFound), want: MsgDataNotFound},
		{name: "key gone", err: crypto.ErrKeyUnavailable, want: MsgKeyUnavailable},
		{name: "tampered", err: crypto.ErrAuthentication, want: MsgDataUnreadable},
		{name: "clipboard", err: service.ErrClipboardUnavailable, want: MsgClipboardUnavailable},
		{name: "busy", err: store.ErrStoreBusy, want: MsgStoreBusy},
		{
			name: "validation detail kept",
			err:  fmt.Errorf("save category: %w", fmt.Errorf("%w: %w", service.ErrInvalidInput, validators.ErrEmptyName)),
			want: "save category: invalid input: name is required",
		},
		{name: "unknown", err: errors.New("disk full"), want: "disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}
