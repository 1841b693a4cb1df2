package ledger

import (
	"context"
	"sort"
	"sync"

	"github.com/rezaamd/digitalwallet/internal/paging"
)

type memoryStore struct {
	mu        sync.RWMutex
	transfers []Transfer
	nextSeq   int64
}

// NewMemory creates a concurrency-safe in-memory transfer store used by unit
// tests and the development fallback when no database is configured.
func NewMemory() Store {
	return &memoryStore{}
}

func (s *memoryStore) FindByID(_ context.Context, id string) (*Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.transfers {
		if s.transfers[i].ID == id {
			t := s.transfers[i]
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryStore) LatestForWallet(_ context.Context, walletID string) (*Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latestLocked(walletID), nil
}

func (s *memoryStore) LatestPairForWallets(_ context.Context, firstID, secondID string) (*Transfer, *Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latestLocked(firstID), s.latestLocked(secondID), nil
}

// latestLocked resolves the wallet's most recent transfer; ties on the
// creation timestamp go to the row inserted last.
func (s *memoryStore) latestLocked(walletID string) *Transfer {
	if walletID == "" {
		return nil
	}
	var best *Transfer
	for i := range s.transfers {
		t := &s.transfers[i]
		if !t.Touches(walletID) {
			continue
		}
		if best == nil || t.CreatedAt.After(best.CreatedAt) ||
			(t.CreatedAt.Equal(best.CreatedAt) && t.Seq > best.Seq) {
			best = t
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}

func (s *memoryStore) History(_ context.Context, filter Filter, req paging.Request) (paging.Page[Transfer], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Transfer
	for _, t := range s.transfers {
		if filter.Matches(t) {
			matched = append(matched, t)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].Seq > matched[j].Seq
	})
	return paging.Slice(matched, req), nil
}

func (s *memoryStore) Append(_ context.Context, transfer Transfer, heads Heads) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.headMatchesLocked(transfer.OriginID, heads.Origin) {
		return ErrConflict
	}
	if !s.headMatchesLocked(transfer.DestinationID, heads.Destination) {
		return ErrConflict
	}
	s.insertLocked(transfer)
	return nil
}

func (s *memoryStore) headMatchesLocked(walletID, head string) bool {
	if walletID == "" {
		return true
	}
	latest := s.latestLocked(walletID)
	if latest == nil {
		return head == ""
	}
	return latest.ID == head
}

func (s *memoryStore) Create(_ context.Context, transfer Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertLocked(transfer)
	return nil
}

func (s *memoryStore) insertLocked(transfer Transfer) {
	s.nextSeq++
	transfer.Seq = s.nextSeq
	s.transfers = append(s.transfers, transfer)
}

func (s *memoryStore) Update(_ context.Context, transfer Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transfers {
		if s.transfers[i].ID == transfer.ID {
			transfer.Seq = s.transfers[i].Seq
			s.transfers[i] = transfer
			return nil
		}
	}
	return ErrNotFound
}

func (s *memoryStore) Delete(_ context.Context, transfer Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transfers {
		if s.transfers[i].ID == transfer.ID {
			s.transfers = append(s.transfers[:i], s.transfers[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
