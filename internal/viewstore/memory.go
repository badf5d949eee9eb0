package viewstore

import (
	"context"
	"sync"
)

// MemoryStore keeps views in process. Save merges into the existing record.
type MemoryStore struct {
	mu    sync.Mutex
	views map[string]View
	calls map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{views: map[string]View{}, calls: map[string]int{}}
}

func (s *MemoryStore) Load(_ context.Context, id string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["load"]++
	v, ok := s.views[id]
	if !ok {
		return View{}, ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, v View) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["save"]++
	s.views[id] = s.views[id].Merge(v)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["delete"]++
	delete(s.views, id)
	return nil
}

// Count returns how many times op ran.
func (s *MemoryStore) Count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}
