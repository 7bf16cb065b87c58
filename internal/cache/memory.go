package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is a process-local Store used in tests and single-instance
// deployments that run without redis.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	nowFn   func() time.Time
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemory creates an empty in-process store.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		nowFn:   time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || m.nowFn().After(entry.expiresAt) {
		return nil, ErrMiss
	}

	// Return a copy so callers cannot mutate the cached payload.
	value := make([]byte, len(entry.value))
	copy(value, entry.value)
	return value, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.nowFn()
	for k, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, k)
		}
	}
	m.entries[key] = memoryEntry{value: stored, expiresAt: now.Add(ttl)}
	return nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() error { return nil }
