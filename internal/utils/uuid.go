// Package utils provides small helpers shared by the client packages:
// key identifiers and atomic file writes.
package utils

import "github.com/google/uuid"

// UUIDGenerator issues identifiers for vault keys. Version 7 ids sort by
// creation time, which keeps rotated keys for one alias in order.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new v7 id, or a random v4 id if the clock source fails.
func (g *UUIDGenerator) Generate() string {
	if v7, err := uuid.NewV7(); err == nil {
		return v7.String()
	}
	return uuid.NewString()
}
