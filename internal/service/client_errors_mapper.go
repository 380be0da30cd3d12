// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-guard/internal/lock"
	"github.com/MKhiriev/go-pass-guard/internal/store"
	"github.com/MKhiriev/go-pass-guard/internal/validators"
)

// mapStoreError translates a storage error into a service error. Errors
// without a service meaning are returned unchanged so callers can still
// match the store sentinels (e.g. store.ErrStoreBusy for a retry).
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, store.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	return err
}

// mapValidationError marks every validator or lock input error as
// [ErrInvalidInput] while keeping the specific cause.
func mapValidationError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, validators.ErrEmptyTitle),
		errors.Is(err, validators.ErrEmptyPassword),
		errors.Is(err, validators.ErrEmptyName),
		errors.Is(err, validators.ErrInvalidID),
		errors.Is(err, validators.ErrInvalidPin),
		errors.Is(err, lock.ErrInvalidInput):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return err
}
