package mocks

import (
	"fmt"

	"github.com/mcoot/cwlroster/internal/dependencies/ids"
)

// MockIDs is a mock implementation of ids.Generator for testing
type MockIDs struct {
	// Queued is a queue of IDs to hand out before falling back to a counter
	Queued []string
	index  int
	prefix string
	next   int
}

// Ensure MockIDs implements Generator
var _ ids.Generator = (*MockIDs)(nil)

// NewMockIDs creates a MockIDs producing "<prefix>-1", "<prefix>-2", ...
func NewMockIDs(prefix string) *MockIDs {
	return &MockIDs{prefix: prefix}
}

// NewID returns the next queued ID, or the next counter value
func (m *MockIDs) NewID() string {
	if m.index < len(m.Queued) {
		id := m.Queued[m.index]
		m.index++
		return id
	}
	m.next++
	return fmt.Sprintf("%s-%d", m.prefix, m.next)
}

// Queue adds values to the ID queue
func (m *MockIDs) Queue(values ...string) {
	m.Queued = append(m.Queued, values...)
}
