package repository

import (
	"context"
	"github.com/nikolayk812/storefront/internal/port"
	"sync"
)

type memoryKV struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemoryKV() port.KeyValueStore {
	return &memoryKV{
		entries: make(map[string]string),
	}
}

func (m *memoryKV) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, errEmptyKey
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.entries[key]
	return value, ok, nil
}

func (m *memoryKV) Set(_ context.Context, key string, value string) error {
	if key == "" {
		return errEmptyKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = value
	return nil
}

func (m *memoryKV) Remove(_ context.Context, key string) error {
	if key == "" {
		return errEmptyKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}
