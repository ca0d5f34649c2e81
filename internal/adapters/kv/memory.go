package kv

import (
	"context"
	"sync"

	"github.com/NereaCassian/C-3PO/internal/ports"
)

var _ ports.WatchableStore = (*Memory)(nil)

// Memory is an in-process store, used in tests and for throwaway sessions.
type Memory struct {
	Notifier
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory { return &Memory{data: map[string]string{}} }

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	var old *string
	if v, ok := m.data[key]; ok {
		old = &v
	}
	m.data[key] = value
	m.mu.Unlock()
	if ch, ok := Change(key, old, &value); ok {
		m.Notify(ctx, ch)
	}
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	v, ok := m.data[key]
	delete(m.data, key)
	m.mu.Unlock()
	if ok {
		m.Notify(ctx, ports.StorageChange{Key: key, OldValue: &v})
	}
	return nil
}
