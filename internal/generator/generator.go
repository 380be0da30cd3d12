// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package generator creates random passwords and rates how strong a
// password is.
package generator

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const (
	MinLength     = 4
	MaxLength     = 64
	DefaultLength = 16
)

// Character sets. The clear variants leave out characters that are easy to
// misread (0/O, 1/l/I).
const (
	lowerAll    = "abcdefghijklmnopqrstuvwxyz"
	lowerClear  = "abcdefghjkmnpqrstuvwxyz"
	upperAll    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	upperClear  = "ABCDEFGHJKMNPQRSTUVWXYZ"
	digitsAll   = "0123456789"
	digitsClear = "23456789"
	symbols     = "!@#$%^&*()-_=+[]{};:,.?/"
)

var (
	ErrNoCharacterSets = errors.New("no character sets selected")
	ErrInvalidLength   = errors.New("invalid password length")
)

// Options selects the length and alphabet of a generated password.
type Options struct {
	Length         int
	Lowercase      bool
	Uppercase      bool
	Digits         bool
	Symbols        bool
	AvoidAmbiguous bool
}

// DefaultOptions returns a 16 character password using every set without
// ambiguous characters.
func DefaultOptions() Options {
	return Options{
		Length:         DefaultLength,
		Lowercase:      true,
		Uppercase:      true,
		Digits:         true,
		Symbols:        true,
		AvoidAmbiguous: true,
	}
}

// Generate returns a password of opts.Length characters holding at least one
// character of every selected set. Randomness comes from crypto/rand.
func Generate(opts Options) (string, error) {
	sets := opts.sets()
	if len(sets) == 0 {
		return "", ErrNoCharacterSets
	}
	if opts.Length < MinLength || opts.Length > MaxLength {
		return "", fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidLength, opts.Length, MinLength, MaxLength)
	}

	password := make([]byte, 0, opts.Length)
	for _, set := range sets {
		c, err := pick(set)
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}

	all := strings.Join(sets, "")
	for len(password) < opts.Length {
		c, err := pick(all)
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}

	if err := shuffle(password); err != nil {
		return "", err
	}
	return string(password), nil
}

func (o Options) sets() []string {
	var sets []string
	if o.Lowercase {
		sets = append(sets, choose(o.AvoidAmbiguous, lowerClear, lowerAll))
	}
	if o.Uppercase {
		sets = append(sets, choose(o.AvoidAmbiguous, upperClear, upperAll))
	}
	if o.Digits {
		sets = append(sets, choose(o.AvoidAmbiguous, digitsClear, digitsAll))
	}
	if o.Symbols {
		sets = append(sets, symbols)
	}
	return sets
}

func choose(avoid bool, a, b string) string {
	if avoid {
		return a
	}
	return b
}

func pick(set string) (byte, error) {
	i, err := randIndex(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

// shuffle is a Fisher-Yates shuffle so the per-set characters do not sit at
// fixed positions.
func shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := randIndex(i + 1)
		if err != nil {
			return err
		}
		b[i], b[j] = b[j], b[i]
	}
	return nil
}

func randIndex(n int) (int, error) {
	i, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("read random: %w", err)
	}
	return int(i.Int64()), nil
}
