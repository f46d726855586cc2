package snapshot

import (
	"context"
	"sort"
	"sync"
)

// Memory keeps snapshots in process memory.
type Memory struct {
	mu    sync.RWMutex
	items map[string][]byte
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string][]byte)}
}

// Put implements Store. Snapshots are held encoded.
func (m *Memory) Put(_ context.Context, s Snapshot) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.items[s.Key()] = data
	m.mu.Unlock()
	return nil
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, key string) (Snapshot, error) {
	m.mu.RLock()
	data, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return Snapshot{}, notFound(key)
	}
	return decode(key, data)
}

// List implements Store.
func (m *Memory) List(context.Context) ([]string, error) {
	m.mu.RLock()
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	m.mu.RUnlock()
	sort.Strings(keys)
	return keys, nil
}

// Len returns the number of stored snapshots.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Close implements Store.
func (m *Memory) Close() error { return nil }
