package store

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Memory keeps all records in process. It is the test backend.
type Memory struct {
	mu    sync.RWMutex
	items map[string]map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, userID, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.items[userID][key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *Memory) Put(_ context.Context, userID, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.items[userID] == nil {
		m.items[userID] = make(map[string][]byte)
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.items[userID][key] = stored
	return nil
}

func (m *Memory) Delete(_ context.Context, userID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[userID][key]; !ok {
		return ErrNotFound
	}
	delete(m.items[userID], key)
	return nil
}

func (m *Memory) QueryPrefix(_ context.Context, userID, prefix string) ([][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0)
	for key := range m.items[userID] {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	values := make([][]byte, 0, len(keys))
	for _, key := range keys {
		value := m.items[userID][key]
		out := make([]byte, len(value))
		copy(out, value)
		values = append(values, out)
	}
	return values, nil
}

func (m *Memory) Close() error {
	return nil
}
