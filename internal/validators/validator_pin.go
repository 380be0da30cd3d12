// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
)

const (
	// PinMinLength and PinMaxLength bound the number of PIN digits.
	PinMinLength = 4
	PinMaxLength = 8
)

// PinValidator accepts PINs of [PinMinLength] to [PinMaxLength] ASCII digits.
type PinValidator struct{}

func NewPinValidator() Validator {
	return &PinValidator{}
}

// Validate expects a string. Field scoping is not supported.
func (v *PinValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	if len(fields) > 0 {
		return ErrUnknownField
	}

	pin, ok := obj.(string)
	if !ok {
		return ErrUnsupportedType
	}

	if len(pin) < PinMinLength || len(pin) > PinMaxLength {
		return ErrInvalidPin
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return ErrInvalidPin
		}
	}

	return nil
}
