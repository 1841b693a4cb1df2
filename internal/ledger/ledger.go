package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/rezaamd/digitalwallet/internal/paging"
)

var (
	// ErrNotFound indicates the requested transfer does not exist.
	ErrNotFound = errors.New("transfer not found")

	// ErrConflict indicates a concurrent write moved a wallet's latest
	// transfer between the balance read and the append attempt.
	ErrConflict = errors.New("transfer conflict")

	// ErrPersistence marks store-level I/O failures so callers can retry
	// this class separately from business-rule rejections.
	ErrPersistence = errors.New("persistence failure")
)

// Transfer is one movement of funds. Rather than keeping a mutable balance
// column on the wallet, each row snapshots both participants' balances as
// they stood immediately after the transfer; a wallet's current balance is
// the snapshot on its side of the latest row touching it.
//
// An empty OriginID marks an external funding leg (deposit); an empty
// DestinationID marks an external withdrawal leg.
type Transfer struct {
	ID                 string    `json:"id"`
	OriginID           string    `json:"origin_id,omitempty"`
	DestinationID      string    `json:"destination_id,omitempty"`
	Amount             int64     `json:"amount"`
	OriginBalance      int64     `json:"origin_balance"`
	DestinationBalance int64     `json:"destination_balance"`
	CreatedAt          time.Time `json:"created_at"`

	// Seq is the store-assigned insertion order, used to break ties
	// between rows sharing a creation timestamp.
	Seq int64 `json:"-"`
}

// Touches reports whether the transfer involves the given wallet.
func (t Transfer) Touches(walletID string) bool {
	return t.OriginID == walletID || t.DestinationID == walletID
}

// BalanceFor returns the wallet's balance as recorded by this transfer.
// The destination side wins when the wallet appears on both (self-transfer);
// the engine keeps both snapshots equal in that case.
func (t Transfer) BalanceFor(walletID string) int64 {
	if t.DestinationID == walletID {
		return t.DestinationBalance
	}
	return t.OriginBalance
}

// Filter restricts a history query. Zero values mean "not set"; present
// fields combine with AND, and the wallet clause matches rows where the
// wallet is either origin or destination. Date bounds are inclusive.
type Filter struct {
	WalletID  string
	StartDate time.Time
	EndDate   time.Time
}

// Matches reports whether the transfer satisfies every present filter field.
func (f Filter) Matches(t Transfer) bool {
	if f.WalletID != "" && !t.Touches(f.WalletID) {
		return false
	}
	if !f.StartDate.IsZero() && t.CreatedAt.Before(f.StartDate) {
		return false
	}
	if !f.EndDate.IsZero() && t.CreatedAt.After(f.EndDate) {
		return false
	}
	return true
}

// Heads pins the latest transfer each wallet had when its balance was read.
// Empty string means "no transfer existed". Append compares them against the
// store's view under lock and rejects the write with ErrConflict when either
// head has moved. Wallets with an empty id (external legs) are not checked.
type Heads struct {
	Origin      string
	Destination string
}

// Store is the durable collection of transfer rows. The append path is the
// only one the engine uses; Create, Update and Delete exist for
// administrative correction and bypass the optimistic head check.
type Store interface {
	FindByID(ctx context.Context, id string) (*Transfer, error)
	LatestForWallet(ctx context.Context, walletID string) (*Transfer, error)
	LatestPairForWallets(ctx context.Context, firstID, secondID string) (*Transfer, *Transfer, error)
	History(ctx context.Context, filter Filter, req paging.Request) (paging.Page[Transfer], error)

	Append(ctx context.Context, transfer Transfer, heads Heads) error
	Create(ctx context.Context, transfer Transfer) error
	Update(ctx context.Context, transfer Transfer) error
	Delete(ctx context.Context, transfer Transfer) error
}
