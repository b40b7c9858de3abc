package checkout

import "sync"

// Manager hands out one workflow per browser session. Requests within a
// session arrive one at a time, but different sessions hit the server
// concurrently, so the map is guarded.
type Manager struct {
	mu       sync.Mutex
	api      OrderAPI
	store    ConfirmationStore
	sessions map[string]*Session
}

func NewManager(api OrderAPI, store ConfirmationStore) *Manager {
	return &Manager{
		api:      api,
		store:    store,
		sessions: make(map[string]*Session),
	}
}

// Session returns the live workflow for a session id, creating a fresh one
// in Browsing when none exists yet.
func (m *Manager) Session(sessionID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sessionID]; ok {
		return s
	}
	s := NewSession(sessionID, m.api, m.store)
	m.sessions[sessionID] = s
	return s
}

// Drop forgets a session's workflow. Confirmed is terminal, so starting to
// shop again after a confirmed order means a brand-new workflow.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}
