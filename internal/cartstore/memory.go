package cartstore

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	lines     []Line
	expiresAt time.Time
}

// Memory is the default in-process Store. Entries expire lazily on access
// and a full sweep runs at most once per sweepEvery during writes, so the
// map stays bounded even for tokens that never come back.
type Memory struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	ttl        time.Duration
	sweepEvery time.Duration
	lastSweep  time.Time
	now        func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries:    make(map[string]memoryEntry),
		ttl:        ttl,
		sweepEvery: 10 * time.Minute,
		lastSweep:  time.Now(),
		now:        time.Now,
	}
}

func (m *Memory) Get(_ context.Context, token string) ([]Line, error) {
	m.mu.RLock()
	entry, ok := m.entries[token]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if m.now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, token)
		m.mu.Unlock()
		return nil, nil
	}
	out := make([]Line, len(entry.lines))
	copy(out, entry.lines)
	return out, nil
}

func (m *Memory) Put(_ context.Context, token string, lines []Line) error {
	stored := make([]Line, len(lines))
	copy(stored, lines)

	m.mu.Lock()
	m.entries[token] = memoryEntry{lines: stored, expiresAt: m.now().Add(m.ttl)}
	m.sweepLocked()
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	delete(m.entries, token)
	m.mu.Unlock()
	return nil
}

// sweepLocked drops expired entries. Caller holds mu.
func (m *Memory) sweepLocked() {
	now := m.now()
	if now.Sub(m.lastSweep) < m.sweepEvery {
		return
	}
	m.lastSweep = now
	for token, entry := range m.entries {
		if now.After(entry.expiresAt) {
			delete(m.entries, token)
		}
	}
}
