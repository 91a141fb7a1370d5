package quiz

import "sync"

// SessionStore maps a client's session key to its quiz state. The transport
// of the key (cookie, token) is the caller's concern.
type SessionStore interface {
	Get(key string) (*Session, bool)
	Put(key string, s *Session)
}

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryStore() SessionStore {
	return &memoryStore{sessions: map[string]*Session{}}
}

func (m *memoryStore) Get(key string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[key]
	return s, ok
}

func (m *memoryStore) Put(key string, s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[key] = s
}
