package transfer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rezaamd/digitalwallet/internal/ledger"
	"github.com/rezaamd/digitalwallet/internal/notification"
	"github.com/rezaamd/digitalwallet/internal/wallet"
)

var (
	// ErrWalletNotFound indicates a participating wallet does not exist.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrInvalidAmount indicates a non-positive transfer amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds indicates the origin balance cannot cover the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Receipt describes a committed ledger movement.
type Receipt struct {
	TransferID         string    `json:"transfer_id"`
	OriginBalance      int64     `json:"origin_balance"`
	DestinationBalance int64     `json:"destination_balance"`
	CompletedAt        time.Time `json:"completed_at"`
}

// Engine orchestrates ledger writes. It is the only component that appends
// transfer rows on the business path; every append carries both wallets' new
// balance snapshots and is guarded by an optimistic head check so concurrent
// transfers on a shared wallet cannot both commit against a stale balance.
type Engine struct {
	wallets   wallet.Store
	transfers ledger.Store
	notifier  notification.Notifier

	now   func() time.Time
	newID func() string
}

// NewEngine builds a transfer engine. The notifier may be nil.
func NewEngine(wallets wallet.Store, transfers ledger.Store, notifier notification.Notifier) *Engine {
	return &Engine{
		wallets:   wallets,
		transfers: transfers,
		notifier:  notifier,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// Execute moves amount from the origin wallet to the destination wallet,
// appending exactly one transfer row. A lost race against a concurrent write
// on either wallet surfaces as ledger.ErrConflict; callers may retry that
// class and ledger.ErrPersistence with backoff.
func (e *Engine) Execute(ctx context.Context, originID, destinationID string, amount int64) (Receipt, error) {
	origin, destination, err := e.wallets.FindPairByID(ctx, originID, destinationID)
	if err != nil {
		return Receipt{}, fmt.Errorf("resolve wallets: %w: %w", ledger.ErrPersistence, err)
	}
	if origin == nil || destination == nil {
		return Receipt{}, ErrWalletNotFound
	}

	latestOrigin, latestDestination, err := e.transfers.LatestPairForWallets(ctx, originID, destinationID)
	if err != nil {
		return Receipt{}, fmt.Errorf("resolve balances: %w", err)
	}
	originBalance := balanceOf(latestOrigin, originID)
	destinationBalance := balanceOf(latestDestination, destinationID)

	if amount <= 0 {
		return Receipt{}, ErrInvalidAmount
	}
	if originBalance < amount {
		return Receipt{}, ErrInsufficientFunds
	}

	newOrigin := originBalance - amount
	newDestination := destinationBalance + amount
	if originID == destinationID {
		// A self-transfer nets to zero; both snapshots record the
		// unchanged balance.
		newOrigin = originBalance
		newDestination = originBalance
	}

	t := ledger.Transfer{
		ID:                 e.newID(),
		OriginID:           originID,
		DestinationID:      destinationID,
		Amount:             amount,
		OriginBalance:      newOrigin,
		DestinationBalance: newDestination,
		CreatedAt:          e.now(),
	}
	heads := ledger.Heads{Origin: headOf(latestOrigin), Destination: headOf(latestDestination)}
	if err := e.transfers.Append(ctx, t, heads); err != nil {
		return Receipt{}, fmt.Errorf("append transfer: %w", err)
	}

	e.notify(ctx, notification.KindTransferCompleted, t)

	return Receipt{
		TransferID:         t.ID,
		OriginBalance:      newOrigin,
		DestinationBalance: newDestination,
		CompletedAt:        t.CreatedAt,
	}, nil
}

// Deposit credits a wallet from an external source, appending a transfer row
// with an empty origin leg.
func (e *Engine) Deposit(ctx context.Context, destinationID string, amount int64) (Receipt, error) {
	destination, err := e.wallets.FindByID(ctx, destinationID)
	if err != nil {
		if errors.Is(err, wallet.ErrNotFound) {
			return Receipt{}, ErrWalletNotFound
		}
		return Receipt{}, fmt.Errorf("resolve wallet: %w: %w", ledger.ErrPersistence, err)
	}
	if amount <= 0 {
		return Receipt{}, ErrInvalidAmount
	}

	latest, err := e.transfers.LatestForWallet(ctx, destination.ID)
	if err != nil {
		return Receipt{}, fmt.Errorf("resolve balance: %w", err)
	}
	newBalance := balanceOf(latest, destination.ID) + amount

	t := ledger.Transfer{
		ID:                 e.newID(),
		DestinationID:      destination.ID,
		Amount:             amount,
		DestinationBalance: newBalance,
		CreatedAt:          e.now(),
	}
	if err := e.transfers.Append(ctx, t, ledger.Heads{Destination: headOf(latest)}); err != nil {
		return Receipt{}, fmt.Errorf("append deposit: %w", err)
	}

	e.notify(ctx, notification.KindDepositCompleted, t)

	return Receipt{TransferID: t.ID, DestinationBalance: newBalance, CompletedAt: t.CreatedAt}, nil
}

// Withdraw debits a wallet toward an external destination, appending a
// transfer row with an empty destination leg.
func (e *Engine) Withdraw(ctx context.Context, originID string, amount int64) (Receipt, error) {
	origin, err := e.wallets.FindByID(ctx, originID)
	if err != nil {
		if errors.Is(err, wallet.ErrNotFound) {
			return Receipt{}, ErrWalletNotFound
		}
		return Receipt{}, fmt.Errorf("resolve wallet: %w: %w", ledger.ErrPersistence, err)
	}
	if amount <= 0 {
		return Receipt{}, ErrInvalidAmount
	}

	latest, err := e.transfers.LatestForWallet(ctx, origin.ID)
	if err != nil {
		return Receipt{}, fmt.Errorf("resolve balance: %w", err)
	}
	balance := balanceOf(latest, origin.ID)
	if balance < amount {
		return Receipt{}, ErrInsufficientFunds
	}
	newBalance := balance - amount

	t := ledger.Transfer{
		ID:            e.newID(),
		OriginID:      origin.ID,
		Amount:        amount,
		OriginBalance: newBalance,
		CreatedAt:     e.now(),
	}
	if err := e.transfers.Append(ctx, t, ledger.Heads{Origin: headOf(latest)}); err != nil {
		return Receipt{}, fmt.Errorf("append withdrawal: %w", err)
	}

	e.notify(ctx, notification.KindWithdrawalCompleted, t)

	return Receipt{TransferID: t.ID, OriginBalance: newBalance, CompletedAt: t.CreatedAt}, nil
}

// notify emits the event best-effort; delivery failures never fail the write.
func (e *Engine) notify(ctx context.Context, kind string, t ledger.Transfer) {
	if e.notifier == nil {
		return
	}
	_ = e.notifier.Send(ctx, notification.Event{
		Kind:          kind,
		TransferID:    t.ID,
		OriginID:      t.OriginID,
		DestinationID: t.DestinationID,
		Amount:        t.Amount,
		OccurredAt:    t.CreatedAt,
	})
}

func balanceOf(latest *ledger.Transfer, walletID string) int64 {
	if latest == nil {
		return 0
	}
	return latest.BalanceFor(walletID)
}

func headOf(latest *ledger.Transfer) string {
	if latest == nil {
		return ""
	}
	return latest.ID
}
