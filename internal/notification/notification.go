package notification

import (
	"context"
	"log/slog"
	"time"
)

const (
	// KindTransferCompleted indicates a wallet-to-wallet transfer committed.
	KindTransferCompleted = "transfer_completed"
	// KindDepositCompleted indicates an external deposit settled into a wallet.
	KindDepositCompleted = "deposit_completed"
	// KindWithdrawalCompleted indicates an external withdrawal left a wallet.
	KindWithdrawalCompleted = "withdrawal_completed"
)

// Event describes a committed ledger movement for downstream consumers.
type Event struct {
	Kind          string    `json:"kind"`
	TransferID    string    `json:"transfer_id"`
	OriginID      string    `json:"origin_id,omitempty"`
	DestinationID string    `json:"destination_id,omitempty"`
	Amount        int64     `json:"amount"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Notifier delivers ledger events to downstream systems.
type Notifier interface {
	Send(ctx context.Context, event Event) error
}

// LoggerNotifier writes events to the structured logger. It is the default
// when no broker is configured.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the event to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, event Event) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("ledger event",
		"kind", event.Kind,
		"transfer_id", event.TransferID,
		"origin_id", event.OriginID,
		"destination_id", event.DestinationID,
		"amount", event.Amount,
	)
	return nil
}
