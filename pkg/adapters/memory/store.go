package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/portico/pkg/domain"
)

// Store implements ports.DraftStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Draft
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Draft),
	}
}

// Set stores a copy of the draft.
func (s *Store) Set(ctx context.Context, key string, draft *domain.Draft) error {
	copied := draft.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = copied
	return nil
}

// Get returns a copy so callers can't mutate stored drafts by pointer.
func (s *Store) Get(ctx context.Context, key string) (*domain.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	draft, ok := s.data[key]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	return draft.Clone(), nil
}

// Delete removes the draft.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns stored keys in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
