package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered identifiers for flow runs and traces.
type UUIDGenerator struct {
}

// NewUUIDGenerator returns a generator of UUIDv7 strings.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7, falling back to a random v4 when the clock
// source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
