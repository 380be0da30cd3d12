// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user input and restored records before they
// reach the lock state machine or the record store.
//
// Two implementations exist:
//   - the PIN validator, accepting 4 to 8 ASCII digits;
//   - the record validator, covering credentials, categories and whole
//     backup snapshots, with optional field-level scoping.
//
// Validators return package sentinels (ErrInvalidPin, ErrEmptyTitle, ...)
// that services translate into their own input errors.
package validators

import "context"

// Validator checks a value. fields restricts the check to the named fields
// where the implementation supports it; no fields means the default set for
// the value's type.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
