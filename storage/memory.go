package storage

import (
	"context"
	"slices"
	"sync"
)

// Memory keeps the document in memory. Its zero value is empty and ready
// to use.
type Memory struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

func (m *Memory) Load(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.data), nil
}

func (m *Memory) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = slices.Clone(data)
	m.saves++
	return nil
}

// Saves returns how many times the document was saved.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
