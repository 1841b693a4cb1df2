package deposit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rezaamd/digitalwallet/internal/transfer"
)

// ErrDeclined indicates the external gateway refused to authorize the movement.
var ErrDeclined = errors.New("authorization declined")

// Service coordinates external funding: it records the deposit request,
// obtains gateway authorization and settles the credit through the transfer
// engine.
type Service struct {
	store   Store
	engine  *transfer.Engine
	gateway Gateway

	now   func() time.Time
	newID func() string
}

// NewService builds a deposit service. A nil gateway falls back to the
// static always-approve connector.
func NewService(store Store, engine *transfer.Engine, gateway Gateway) *Service {
	if gateway == nil {
		gateway = StaticGateway{}
	}
	return &Service{
		store:   store,
		engine:  engine,
		gateway: gateway,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// Result describes the outcome of a funding operation.
type Result struct {
	DepositID     string    `json:"deposit_id,omitempty"`
	TransferID    string    `json:"transfer_id"`
	WalletBalance int64     `json:"wallet_balance"`
	Reference     string    `json:"reference"`
	CompletedAt   time.Time `json:"completed_at"`
}

// Deposit credits the wallet from the external gateway.
func (s *Service) Deposit(ctx context.Context, walletID string, amount int64) (Result, error) {
	if amount <= 0 {
		return Result{}, transfer.ErrInvalidAmount
	}

	decision, err := s.gateway.AuthorizeDeposit(ctx, Authorization{WalletID: walletID, Amount: amount})
	if err != nil {
		return Result{}, fmt.Errorf("authorize deposit: %w", err)
	}
	if !decision.Approved {
		return Result{}, ErrDeclined
	}

	d := Deposit{
		ID:            s.newID(),
		DestinationID: walletID,
		Amount:        amount,
		Reference:     decision.Reference,
		Status:        StatusPending,
		CreatedAt:     s.now(),
	}
	if err := s.store.Create(ctx, d); err != nil {
		return Result{}, fmt.Errorf("record deposit: %w", err)
	}

	receipt, err := s.engine.Deposit(ctx, walletID, amount)
	if err != nil {
		// The request stays on record; the ledger holds no credit for it.
		_ = s.store.UpdateStatus(ctx, d.ID, StatusFailed)
		return Result{}, err
	}
	if err := s.store.UpdateStatus(ctx, d.ID, StatusCompleted); err != nil {
		return Result{}, fmt.Errorf("complete deposit: %w", err)
	}

	return Result{
		DepositID:     d.ID,
		TransferID:    receipt.TransferID,
		WalletBalance: receipt.DestinationBalance,
		Reference:     decision.Reference,
		CompletedAt:   receipt.CompletedAt,
	}, nil
}

// Withdraw debits the wallet toward the external gateway.
func (s *Service) Withdraw(ctx context.Context, walletID string, amount int64) (Result, error) {
	if amount <= 0 {
		return Result{}, transfer.ErrInvalidAmount
	}

	decision, err := s.gateway.AuthorizeWithdrawal(ctx, Authorization{WalletID: walletID, Amount: amount})
	if err != nil {
		return Result{}, fmt.Errorf("authorize withdrawal: %w", err)
	}
	if !decision.Approved {
		return Result{}, ErrDeclined
	}

	receipt, err := s.engine.Withdraw(ctx, walletID, amount)
	if err != nil {
		return Result{}, err
	}

	return Result{
		TransferID:    receipt.TransferID,
		WalletBalance: receipt.OriginBalance,
		Reference:     decision.Reference,
		CompletedAt:   receipt.CompletedAt,
	}, nil
}
