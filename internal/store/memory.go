package store

import (
	"context"
	"sync"
)

// Memory is an in-process Store. It can be told to fail writes for a key,
// which lets callers exercise partial-write handling.
type Memory struct {
	mu       sync.Mutex
	data     map[string][]byte
	failSet  map[string]error
	failGet  map[string]error
	setCalls int
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		data:    make(map[string][]byte),
		failSet: make(map[string]error),
		failGet: make(map[string]error),
	}
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failGet[key]; err != nil {
		return nil, false, err
	}
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set implements Store.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setCalls++
	if err := m.failSet[key]; err != nil {
		return err
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Close implements Store.
func (m *Memory) Close() error { return nil }

// FailSet makes every Set for key return err. A nil err clears the failure.
func (m *Memory) FailSet(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failSet, key)
		return
	}
	m.failSet[key] = err
}

// FailGet makes every Get for key return err. A nil err clears the failure.
func (m *Memory) FailGet(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failGet, key)
		return
	}
	m.failGet[key] = err
}

// SetCalls returns how many Set calls the store has received.
func (m *Memory) SetCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setCalls
}
