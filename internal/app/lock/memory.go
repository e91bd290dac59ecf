package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	token   string
	expires time.Time
}

// MemoryLocker is a process-local Locker used when no redis is configured.
type MemoryLocker struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryLocker creates an empty MemoryLocker
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{entries: make(map[string]entry), now: time.Now}
}

// Acquire implements Locker
func (m *MemoryLocker) Acquire(_ context.Context, key string, ttl time.Duration) (*Lease, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if held, ok := m.entries[key]; ok && now.Before(held.expires) {
		return nil, false, nil
	}

	token := uuid.NewString()
	m.entries[key] = entry{token: token, expires: now.Add(ttl)}
	return &Lease{key: key, token: token, release: m.release}, true, nil
}

func (m *MemoryLocker) release(_ context.Context, key, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if held, ok := m.entries[key]; ok && held.token == token {
		delete(m.entries, key)
	}
	return nil
}
