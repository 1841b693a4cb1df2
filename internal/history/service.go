package history

import (
	"context"

	"github.com/rezaamd/digitalwallet/internal/ledger"
	"github.com/rezaamd/digitalwallet/internal/paging"
)

// Service serves filtered, paginated transfer history. It composes the
// transfer store's history query and adds no business logic of its own.
// Pagination is best-effort: pages are not snapshot-isolated against
// concurrent inserts.
type Service struct {
	store ledger.Store
}

// NewService builds a history query service.
func NewService(store ledger.Store) *Service {
	return &Service{store: store}
}

// Query returns transfers matching every supplied filter field: the wallet
// clause matches origin or destination, and date bounds are inclusive.
func (s *Service) Query(ctx context.Context, filter ledger.Filter, req paging.Request) (paging.Page[ledger.Transfer], error) {
	return s.store.History(ctx, filter, req)
}
