package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkordes/planner/internal/domain"
)

// memoryBindingStore keeps bindings in a map. Used by tests and by
// BINDING_DRIVER=memory for throwaway sessions.
type memoryBindingStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryBindingStore returns an empty in-memory BindingStore.
func NewMemoryBindingStore() BindingStore {
	return &memoryBindingStore{data: make(map[string]string)}
}

func (s *memoryBindingStore) Load(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", fmt.Errorf("repo.memoryBindingStore.Load: %w", domain.ErrNotFound)
	}
	return v, nil
}

func (s *memoryBindingStore) Store(_ context.Context, key, tripID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = tripID
	return nil
}

func (s *memoryBindingStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
