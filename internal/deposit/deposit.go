package deposit

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates the requested deposit does not exist.
var ErrNotFound = errors.New("deposit not found")

const (
	// StatusPending marks a deposit recorded but not yet settled to the ledger.
	StatusPending = "pending"
	// StatusCompleted marks a deposit whose ledger credit committed.
	StatusCompleted = "completed"
	// StatusFailed marks a deposit whose ledger credit could not commit.
	StatusFailed = "failed"
)

// Deposit records an external funding request targeting a wallet. The ledger
// credit it settles into is a transfer row with an empty origin leg.
type Deposit struct {
	ID            string    `json:"id"`
	DestinationID string    `json:"destination_id"`
	Amount        int64     `json:"amount"`
	Reference     string    `json:"reference,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// Store persists deposit records.
type Store interface {
	FindByID(ctx context.Context, id string) (*Deposit, error)
	Create(ctx context.Context, deposit Deposit) error
	UpdateStatus(ctx context.Context, id, status string) error
}
