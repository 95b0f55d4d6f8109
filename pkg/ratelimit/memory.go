package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter is a process-local fixed-window counter. State is lost on
// restart or when running more than one replica, so it is a soft guard,
// not a correctness guarantee.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	ceiling int
	window  time.Duration
	now     func() time.Time
}

type windowEntry struct {
	count   int
	resetAt time.Time
}

func NewMemoryLimiter(ceiling int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		entries: make(map[string]*windowEntry),
		ceiling: ceiling,
		window:  window,
		now:     time.Now,
	}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e, ok := m.entries[key]
	if !ok || now.After(e.resetAt) {
		m.entries[key] = &windowEntry{count: 1, resetAt: now.Add(m.window)}
		return true, nil
	}

	e.count++
	return e.count <= m.ceiling, nil
}

// Count returns the current counter for key, for tests and introspection.
func (m *MemoryLimiter) Count(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[key]; ok {
		return e.count
	}
	return 0
}
