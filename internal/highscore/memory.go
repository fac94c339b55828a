package highscore

import (
	"context"
	"sync"
)

// Memory keeps the high score in process memory. It is used when
// persistence is disabled and in tests.
type Memory struct {
	mu    sync.Mutex
	value int
}

// NewMemory returns a store seeded with initial.
func NewMemory(initial int) *Memory {
	return &Memory{value: initial}
}

func (m *Memory) Get(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value, nil
}

func (m *Memory) Set(_ context.Context, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = value
	return nil
}
