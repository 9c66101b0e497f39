package history

import (
	"sync"

	"github.com/oklog/ulid/v2"
)

// Manager hands out browsing histories keyed by session ID.
// Sessions live for the lifetime of the process; there is no expiry.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*BrowsingHistory
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*BrowsingHistory),
	}
}

// Create mints a new session with a fresh ULID.
func (m *Manager) Create() (string, *BrowsingHistory) {
	id := ulid.Make().String()
	h := NewBrowsingHistory()

	m.mu.Lock()
	m.sessions[id] = h
	m.mu.Unlock()

	return id, h
}

// Get returns the history for a known session.
func (m *Manager) Get(id string) (*BrowsingHistory, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h, ok := m.sessions[id]
	return h, ok
}

// GetOrCreate returns the history for id, registering it on first use.
// Clients may present their own session IDs; an empty id mints a new one.
func (m *Manager) GetOrCreate(id string) (string, *BrowsingHistory) {
	if id == "" {
		return m.Create()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if h, ok := m.sessions[id]; ok {
		return id, h
	}
	h := NewBrowsingHistory()
	m.sessions[id] = h
	return id, h
}

// Len returns the number of active sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}
