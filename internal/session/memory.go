package session

import (
	"context"
	"sync"
	"time"

	"github.com/safar/rakhi-store/internal/database"
)

type memoryEntry struct {
	session *Session
	expires time.Time
}

// MemoryStore keeps sessions in process memory. Sessions are lost on restart.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memoryEntry
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (m *MemoryStore) Create(ctx context.Context, phone string) (*Session, error) {
	s := newSession(phone)
	if err := m.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, database.ErrSessionNotFound
	}
	if m.ttl > 0 && m.now().After(e.expires) {
		delete(m.sessions, id)
		return nil, database.ErrSessionNotFound
	}
	return clone(e.session), nil
}

func (m *MemoryStore) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[s.ID] = memoryEntry{
		session: clone(s),
		expires: m.now().Add(m.ttl),
	}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}
