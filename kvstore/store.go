package kvstore

import (
	"bytes"
	"maps"
	"slices"
	"sync"
)

// Store is a string-keyed store of raw values.
type Store interface {
	// Get returns the raw value stored under key.
	Get(key string) (any, bool)
	// Set stores value under key, replacing any previous value.
	Set(key string, value any)
	// Delete removes key. Deleting a missing key is a no-op.
	Delete(key string)
}

// MemoryStore is an in-memory Store. It is safe for concurrent use; each
// operation is atomic per key. []byte values are copied on the way in and out.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]any)}
}

func (m *MemoryStore) Get(key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]

	return cloneValue(v), ok
}

func (m *MemoryStore) Set(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.values == nil {
		m.values = make(map[string]any)
	}

	m.values[key] = cloneValue(value)
}

func (m *MemoryStore) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
}

// Keys returns the stored keys in sorted order.
func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.values))
}

// Snapshot returns a copy of the stored values.
func (m *MemoryStore) Snapshot() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]any, len(m.values))
	for k, v := range m.values {
		out[k] = cloneValue(v)
	}

	return out
}

func (m *MemoryStore) replace(values map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values = values
}

// cloneValue copies byte slices so callers never share the stored blob.
func cloneValue(v any) any {
	if b, ok := v.([]byte); ok && b != nil {
		return bytes.Clone(b)
	}

	return v
}
