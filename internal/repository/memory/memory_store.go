package memory

import (
	"context"
	"sync"

	"pizza-service/internal/repository"
)

// Store is a mutex-guarded in-memory record store. It backs tests and the
// "memory" storage driver; Create is atomic under the lock.
type Store struct {
	mu      sync.RWMutex
	records map[string]map[string][]byte
}

var _ repository.Store = (*Store)(nil)

func New() *Store {
	return &Store{records: make(map[string]map[string][]byte)}
}

func (s *Store) Exists(ctx context.Context, category, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[category][id]
	return ok, nil
}

func (s *Store) Create(ctx context.Context, category, id string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[category][id]; ok {
		return repository.ErrAlreadyExists
	}
	if s.records[category] == nil {
		s.records[category] = make(map[string][]byte)
	}
	s.records[category][id] = clone(value)
	return nil
}

func (s *Store) Read(ctx context.Context, category, id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[category][id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(v), nil
}

func (s *Store) Update(ctx context.Context, category, id string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[category][id]; !ok {
		return repository.ErrNotFound
	}
	s.records[category][id] = clone(value)
	return nil
}

func (s *Store) Delete(ctx context.Context, category, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[category][id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.records[category], id)
	return nil
}

func clone(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
