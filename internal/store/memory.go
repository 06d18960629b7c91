package store

import (
	"context"
	"sync"

	"github.com/avdeev99/travelbot/internal/domain"
)

// MemoryStore keeps state in process memory. Suitable for a single-node
// deployment and for tests.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string]*domain.State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]*domain.State)}
}

func (s *MemoryStore) Get(ctx context.Context, slot string) (*domain.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.slots[slot]
	if !ok {
		return nil, ErrNotFound
	}
	return state.Clone(), nil
}

func (s *MemoryStore) Set(ctx context.Context, slot string, state *domain.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slot] = state.Clone()
	return nil
}

func (s *MemoryStore) Init(ctx context.Context, slot string, state *domain.State) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.slots[slot]; ok {
		return false, nil
	}
	s.slots[slot] = state.Clone()
	return true, nil
}

var _ Store = (*MemoryStore)(nil)
