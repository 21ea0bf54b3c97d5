package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/diillson/sales-insight-go/internal/domain/analysis"
	"github.com/diillson/sales-insight-go/internal/shared/types"
)

// Session is one uploaded dataset held by the server.
type Session struct {
	ID        string
	FileName  string
	CreatedAt time.Time
	Engine    *analysis.Engine
}

// SessionStore keeps one engine per upload. When full, the oldest session is
// evicted.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	order    []string
	capacity int
	now      func() time.Time
}

// NewSessionStore creates a store with room for capacity sessions (0 means unbounded).
func NewSessionStore(capacity int) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		capacity: capacity,
		now:      time.Now,
	}
}

// Put stores the engine under a new session id.
func (s *SessionStore) Put(fileName string, engine *analysis.Engine) *Session {
	session := &Session{
		ID:        uuid.NewString(),
		FileName:  fileName,
		CreatedAt: s.now(),
		Engine:    engine,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.capacity > 0 {
		for len(s.order) >= s.capacity {
			oldest := s.order[0]
			s.order = s.order[1:]
			delete(s.sessions, oldest)
		}
	}
	s.sessions[session.ID] = session
	s.order = append(s.order, session.ID)
	return session
}

// Get returns the session or types.ErrSessionNotFound.
func (s *SessionStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, types.ErrSessionNotFound
	}
	return session, nil
}

// Delete discards a session. It reports whether the session existed.
func (s *SessionStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
