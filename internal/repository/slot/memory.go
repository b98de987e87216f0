package slot

import (
	"context"
	"fmt"
	"sync"
)

// Memory keeps slots in a map. A positive quota bounds the size of any value.
type Memory struct {
	mu       sync.RWMutex
	values   map[string]string
	maxBytes int
}

// NewMemory returns an empty in-memory slot store. maxBytes <= 0 means unbounded.
func NewMemory(maxBytes int) *Memory {
	return &Memory{values: make(map[string]string), maxBytes: maxBytes}
}

// Get returns the stored value.
func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set overwrites the stored value.
func (m *Memory) Set(_ context.Context, key, value string) error {
	if m.maxBytes > 0 && len(value) > m.maxBytes {
		return fmt.Errorf("store %d bytes under %q: %w", len(value), key, ErrQuotaExceeded)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
