// Package storage provides key-value persistence backends. Collections are
// stored as whole JSON blobs under one key each; the services layer owns the
// read-modify-write cycle.
package storage

import (
	"context"
	"sync"

	"github.com/mlefevre/diabecare/internal/domain"
)

// Memory is an in-memory key-value store. Used by tests and as a throwaway
// dev backend; contents are lost on exit.
type Memory struct {
	items map[string]string
	mu    sync.RWMutex
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		items: make(map[string]string),
	}
}

func (m *Memory) GetItem(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.items[key]
	return value, ok, nil
}

func (m *Memory) SetItem(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *Memory) RemoveItem(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *Memory) MultiRemove(ctx context.Context, keys []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.items, key)
	}
	return nil
}

func (m *Memory) Close() error {
	return nil
}

var _ domain.KVStore = (*Memory)(nil)
