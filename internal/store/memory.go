package store

import (
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-memory store for testing.
type Memory struct {
	mu       sync.RWMutex
	order    []string
	data     map[string]Record
	metadata map[string]string
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{
		data:     make(map[string]Record),
		metadata: make(map[string]string),
	}
}

// Records returns every definition in first-insertion order.
func (m *Memory) Records() ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Record, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.data[name])
	}
	return out, nil
}

// Put stores a definition by name.
func (m *Memory) Put(r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[r.Name]; !ok {
		m.order = append(m.order, r.Name)
	}
	m.data[r.Name] = r
	m.metadata[RevisionKey] = uuid.NewString()
	return nil
}

// Close is a no-op for memory store.
func (m *Memory) Close() error {
	return nil
}

// GetMetadata retrieves a metadata value by key.
func (m *Memory) GetMetadata(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.metadata[key], nil
}

// SetMetadata stores a metadata value by key.
func (m *Memory) SetMetadata(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metadata[key] = value
	return nil
}
