package session

import (
	"context"
	"sync"
	"time"

	"github.com/adaa/backoffice-go/internal/model"
)

type memoryEntry struct {
	payload   model.SessionPayload
	expiresAt time.Time
}

// MemoryStore is an in-process Store used in development and tests. It
// honors the same TTL semantics as RedisStore: expired entries read as
// absent.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates a MemoryStore with the given session lifetime.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (model.SessionPayload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[sessionID]
	if !ok {
		return model.SessionPayload{}, ErrNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, sessionID)
		return model.SessionPayload{}, ErrNotFound
	}
	return entry.payload, nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID string, payload model.SessionPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sessionID] = memoryEntry{
		payload:   payload,
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, sessionID)
	return nil
}
