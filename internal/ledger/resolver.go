package ledger

import "context"

// Resolver derives wallet balances from transfer history. Balance is never
// stored on the wallet: it is the wallet-side snapshot carried by the latest
// transfer touching it, or zero when the wallet has no history.
type Resolver struct {
	store Store
}

// NewResolver builds a read-only balance resolver over the transfer store.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// BalanceOf returns the wallet's current balance.
func (r *Resolver) BalanceOf(ctx context.Context, walletID string) (int64, error) {
	latest, err := r.store.LatestForWallet(ctx, walletID)
	if err != nil {
		return 0, err
	}
	if latest == nil {
		return 0, nil
	}
	return latest.BalanceFor(walletID), nil
}

// BalanceOfPair returns both wallets' current balances from a single fetch.
// Each side independently defaults to zero when it has no history.
func (r *Resolver) BalanceOfPair(ctx context.Context, firstID, secondID string) (int64, int64, error) {
	first, second, err := r.store.LatestPairForWallets(ctx, firstID, secondID)
	if err != nil {
		return 0, 0, err
	}
	var a, b int64
	if first != nil {
		a = first.BalanceFor(firstID)
	}
	if second != nil {
		b = second.BalanceFor(secondID)
	}
	return a, b, nil
}

// LatestTransfer returns the wallet's most recent transfer, or nil when the
// wallet has none.
func (r *Resolver) LatestTransfer(ctx context.Context, walletID string) (*Transfer, error) {
	return r.store.LatestForWallet(ctx, walletID)
}
