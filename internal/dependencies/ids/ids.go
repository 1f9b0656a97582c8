package ids

import "github.com/google/uuid"

// Generator allocates opaque identifiers and can be mocked for testing
type Generator interface {
	// NewID returns a fresh identifier, unique for the lifetime of the store
	NewID() string
}

// UUIDGenerator implements Generator with random (v4) UUIDs
type UUIDGenerator struct{}

// New creates a new UUIDGenerator
func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a new random UUID string
func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}
