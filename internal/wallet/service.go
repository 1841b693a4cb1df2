package wallet

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rezaamd/digitalwallet/internal/paging"
)

// Service exposes wallet provisioning and lookup operations.
type Service struct {
	store Store
	now   func() time.Time
	newID func() string
}

// NewService builds a wallet service over the given store.
func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// CreateInput captures data required to provision a wallet. An empty Seed is
// replaced with a generated one.
type CreateInput struct {
	BankID *string
	Seed   string
}

// Create provisions a new wallet identity.
func (s *Service) Create(ctx context.Context, input CreateInput) (Wallet, error) {
	seed := input.Seed
	if seed == "" {
		seed = s.newID()
	}
	w := Wallet{
		ID:        s.newID(),
		BankID:    input.BankID,
		Seed:      seed,
		CreatedAt: s.now(),
	}
	if err := s.store.Create(ctx, w); err != nil {
		return Wallet{}, err
	}
	return w, nil
}

// Get retrieves a wallet by id.
func (s *Service) Get(ctx context.Context, id string) (*Wallet, error) {
	return s.store.FindByID(ctx, id)
}

// GetBySeed retrieves a wallet by its seed, optionally scoped to a bank.
func (s *Service) GetBySeed(ctx context.Context, seed string, bankID *string) (*Wallet, error) {
	return s.store.FindBySeed(ctx, seed, bankID)
}

// List pages wallets: a bank's wallets when bankID is set, root wallets
// otherwise.
func (s *Service) List(ctx context.Context, bankID *string, req paging.Request) (paging.Page[Wallet], error) {
	return s.store.List(ctx, bankID, req)
}
