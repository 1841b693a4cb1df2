package deposit

import (
	"context"

	"github.com/google/uuid"
)

// Gateway represents a connector to an external funding source.
type Gateway interface {
	AuthorizeDeposit(ctx context.Context, auth Authorization) (Decision, error)
	AuthorizeWithdrawal(ctx context.Context, auth Authorization) (Decision, error)
}

// Authorization carries the data an external gateway needs to approve a
// funding movement.
type Authorization struct {
	WalletID string
	Amount   int64
}

// Decision captures the gateway's response.
type Decision struct {
	Reference string
	Approved  bool
}

// StaticGateway simulates a gateway that approves every request.
type StaticGateway struct{}

// AuthorizeDeposit approves the deposit with a synthetic reference.
func (StaticGateway) AuthorizeDeposit(_ context.Context, _ Authorization) (Decision, error) {
	return Decision{Reference: uuid.NewString(), Approved: true}, nil
}

// AuthorizeWithdrawal approves the withdrawal with a synthetic reference.
func (StaticGateway) AuthorizeWithdrawal(_ context.Context, _ Authorization) (Decision, error) {
	return Decision{Reference: uuid.NewString(), Approved: true}, nil
}
