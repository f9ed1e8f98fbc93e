package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	entry    Entry
	expireAt time.Time
}

// MemoryStore is an in-process Store. Expired entries are dropped lazily on
// read and in bulk via Sweep.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry

	// now is swappable in tests.
	now func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get returns the entry for key, or (nil, nil) if absent or past retention.
func (m *MemoryStore) Get(ctx context.Context, key string) (*Entry, error) {
	m.mu.RLock()
	me, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if m.now().After(me.expireAt) {
		m.mu.Lock()
		// Re-check under the write lock; another goroutine may have replaced it.
		if cur, ok := m.entries[key]; ok && m.now().After(cur.expireAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, nil
	}
	entry := me.entry
	return &entry, nil
}

// Set stores the entry with the given retention ceiling.
func (m *MemoryStore) Set(ctx context.Context, key string, entry *Entry, retain time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{
		entry:    *entry,
		expireAt: m.now().Add(retain),
	}
	return nil
}

// Delete removes the entry for key.
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Sweep drops all entries past their retention ceiling and reports how many
// were removed.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	removed := 0
	for key, me := range m.entries {
		if now.After(me.expireAt) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of live entries, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// SetClock replaces the store's clock. Intended for tests.
func (m *MemoryStore) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}
