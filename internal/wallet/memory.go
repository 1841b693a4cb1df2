package wallet

import (
	"context"
	"sort"
	"sync"

	"github.com/rezaamd/digitalwallet/internal/paging"
)

type memoryStore struct {
	mu      sync.RWMutex
	wallets map[string]Wallet
}

// NewMemory constructs an in-memory wallet store for tests and the
// development fallback.
func NewMemory() Store {
	return &memoryStore{wallets: make(map[string]Wallet)}
}

func (s *memoryStore) FindByID(_ context.Context, id string) (*Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.wallets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &w, nil
}

func (s *memoryStore) FindBySeed(_ context.Context, seed string, bankID *string) (*Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.wallets {
		if w.Seed != seed {
			continue
		}
		if bankID != nil && !sameBank(w.BankID, bankID) {
			continue
		}
		out := w
		return &out, nil
	}
	return nil, ErrNotFound
}

func (s *memoryStore) FindPairByID(_ context.Context, firstID, secondID string) (*Wallet, *Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var first, second *Wallet
	if w, ok := s.wallets[firstID]; ok {
		out := w
		first = &out
	}
	if w, ok := s.wallets[secondID]; ok {
		out := w
		second = &out
	}
	return first, second, nil
}

func (s *memoryStore) List(_ context.Context, bankID *string, req paging.Request) (paging.Page[Wallet], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []Wallet
	for _, w := range s.wallets {
		if bankID == nil {
			if w.BankID == nil {
				matched = append(matched, w)
			}
			continue
		}
		if w.BankID != nil && *w.BankID == *bankID {
			matched = append(matched, w)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})
	return paging.Slice(matched, req), nil
}

func (s *memoryStore) Create(_ context.Context, wallet Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.wallets[wallet.ID]; exists {
		return ErrExists
	}
	for _, w := range s.wallets {
		if w.Seed == wallet.Seed && sameBank(w.BankID, wallet.BankID) {
			return ErrExists
		}
	}
	s.wallets[wallet.ID] = wallet
	return nil
}

func (s *memoryStore) Update(_ context.Context, wallet Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.wallets[wallet.ID]; !exists {
		return ErrNotFound
	}
	s.wallets[wallet.ID] = wallet
	return nil
}

func (s *memoryStore) Delete(_ context.Context, wallet Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.wallets[wallet.ID]; !exists {
		return ErrNotFound
	}
	delete(s.wallets, wallet.ID)
	return nil
}

func sameBank(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
