package player

import "sync"

// Manager owns one Store per user. Stores are created on first use and live
// for the lifetime of the process; queue state is deliberately not persisted
// across restarts.
type Manager struct {
	mu     sync.Mutex
	stores map[int64]*Store
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{stores: make(map[int64]*Store)}
}

// StoreFor returns the store for userID, creating it if needed.
func (m *Manager) StoreFor(userID int64) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	store, ok := m.stores[userID]
	if !ok {
		store = NewStore()
		m.stores[userID] = store
	}
	return store
}

// Drop releases the store for userID, if any.
func (m *Manager) Drop(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, userID)
}
