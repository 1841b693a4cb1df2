package wallet

import (
	"context"
	"errors"
	"time"

	"github.com/rezaamd/digitalwallet/internal/paging"
)

var (
	// ErrNotFound indicates the requested wallet does not exist.
	ErrNotFound = errors.New("wallet not found")

	// ErrExists indicates a wallet with the same id or (seed, bank) pair
	// already exists.
	ErrExists = errors.New("wallet already exists")
)

// Wallet is a stored-value account identity. It deliberately carries no
// balance field: balances are derived from transfer history by the ledger
// resolver. A nil BankID marks a root wallet owned by no bank.
type Wallet struct {
	ID        string    `json:"id"`
	BankID    *string   `json:"bank_id,omitempty"`
	Seed      string    `json:"seed"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the durable collection of wallet identities. Wallets reference
// transfers only by id; neither store owns the other's rows.
type Store interface {
	FindByID(ctx context.Context, id string) (*Wallet, error)

	// FindBySeed matches on the seed value; the bank filter applies only
	// when bankID is non-nil.
	FindBySeed(ctx context.Context, seed string, bankID *string) (*Wallet, error)

	// FindPairByID fetches both wallets in one query and returns them in
	// caller-supplied order. Absent wallets come back nil; equal ids yield
	// the same wallet in both positions.
	FindPairByID(ctx context.Context, firstID, secondID string) (*Wallet, *Wallet, error)

	// List returns the given bank's wallets when bankID is non-nil, and
	// only root wallets (no bank owner) when it is nil. There is no mode
	// that lists every wallet regardless of owner.
	List(ctx context.Context, bankID *string, req paging.Request) (paging.Page[Wallet], error)

	Create(ctx context.Context, wallet Wallet) error
	Update(ctx context.Context, wallet Wallet) error
	Delete(ctx context.Context, wallet Wallet) error
}
