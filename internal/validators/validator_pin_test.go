// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPinValidator_Validate(t *testing.T) {
	v := NewPinValidator()

	tests := []struct {
		name    string
		obj     any
		fields  []string
		wantErr error
	}{
		{name: "four digits", obj: "1234"},
		{name: "eight digits", obj: "12345678"},
		{name: "leading zeros", obj: "0000"},
		{name: "too short", obj: "123", wantErr: ErrInvalidPin},
		{name: "too long", obj: "123456789", wantErr: ErrInvalidPin},
		{name: "empty", obj: "", wantErr: ErrInvalidPin},
		{name: "letters", obj: "12a4", wantErr: ErrInvalidPin},
		{name: "unicode digits", obj: "١٢٣٤", wantErr: ErrInvalidPin},
		{name: "spaces", obj: "12 34", wantErr: ErrInvalidPin},
		{name: "not a string", obj: 1234, wantErr: ErrUnsupportedType},
		{name: "field scoping", obj: "1234", fields: []string{"pin"}, wantErr: ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.obj, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
