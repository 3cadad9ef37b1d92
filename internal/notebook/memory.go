package notebook

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/model"
)

type memorySession struct {
	Session
	entries []model.NotebookEntry
}

type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*memorySession
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, sessions: map[string]*memorySession{}}
}

func (m *MemoryStore) Create(_ context.Context) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweepLocked(now)
	sess := Session{ID: uuid.NewString(), CreatedAt: now, ExpiresAt: now.Add(m.ttl)}
	m.sessions[sess.ID] = &memorySession{Session: sess}
	return sess, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.liveLocked(id)
	if err != nil {
		return Session{}, err
	}
	return s.Session, nil
}

func (m *MemoryStore) Append(_ context.Context, sess Session, content string, at time.Time) (model.NotebookEntry, error) {
	if at.IsZero() {
		at = m.now()
	}
	entry, err := newEntry(content, at)
	if err != nil {
		return model.NotebookEntry{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.liveLocked(sess.ID)
	if err != nil {
		return model.NotebookEntry{}, err
	}
	s.entries = append(s.entries, entry)
	return entry, nil
}

func (m *MemoryStore) List(_ context.Context, sess Session, limit int) ([]model.NotebookEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.liveLocked(sess.ID)
	if err != nil {
		return nil, err
	}
	return newestFirst(s.entries, limit), nil
}

func (m *MemoryStore) liveLocked(id string) (*memorySession, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, sessionNotFound(id)
	}
	if s.Expired(m.now()) {
		delete(m.sessions, id)
		return nil, sessionNotFound(id)
	}
	return s, nil
}

func (m *MemoryStore) sweepLocked(now time.Time) {
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
		}
	}
}
