package deposit

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu       sync.RWMutex
	deposits map[string]Deposit
}

// NewMemory constructs an in-memory deposit store for tests and the
// development fallback.
func NewMemory() Store {
	return &memoryStore{deposits: make(map[string]Deposit)}
}

func (s *memoryStore) FindByID(_ context.Context, id string) (*Deposit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.deposits[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (s *memoryStore) Create(_ context.Context, deposit Deposit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deposits[deposit.ID] = deposit
	return nil
}

func (s *memoryStore) UpdateStatus(_ context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.deposits[id]
	if !ok {
		return ErrNotFound
	}
	d.Status = status
	s.deposits[id] = d
	return nil
}
