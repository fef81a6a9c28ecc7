package history

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/partsync/bomcompare/internal/bom"
)

// MemoryStore is an in-memory Store for tests and single-shot CLI runs.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*bom.ComparisonSession
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[uuid.UUID]*bom.ComparisonSession)}
}

// Save stores the session under its id.
func (s *MemoryStore) Save(_ context.Context, session *bom.ComparisonSession) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return session.ID, nil
}

// Get returns the stored session or ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*bom.ComparisonSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

// List returns stored sessions newest first.
func (s *MemoryStore) List(_ context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.sessions))
	for _, session := range s.sessions {
		entries = append(entries, Entry{
			ID:             session.ID,
			MasterFilename: session.Master.Filename,
			TargetCount:    len(session.Targets),
			CreatedAt:      session.CreatedAt.Format(time.RFC3339),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt > entries[j].CreatedAt
	})
	return entries, nil
}
