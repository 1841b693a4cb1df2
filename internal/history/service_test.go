package history

import (
	"context"
	"testing"
	"time"

	"github.com/rezaamd/digitalwallet/internal/ledger"
	"github.com/rezaamd/digitalwallet/internal/paging"
)

func seedTransfers(t *testing.T, store ledger.Store, base time.Time) {
	t.Helper()
	rows := []ledger.Transfer{
		{ID: "t1", OriginID: "a", DestinationID: "b", Amount: 1, CreatedAt: base},
		{ID: "t2", OriginID: "b", DestinationID: "a", Amount: 2, CreatedAt: base.Add(time.Hour)},
		{ID: "t3", OriginID: "c", DestinationID: "b", Amount: 3, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "t4", OriginID: "a", DestinationID: "c", Amount: 4, CreatedAt: base.Add(3 * time.Hour)},
	}
	for _, r := range rows {
		if err := store.Create(context.Background(), r); err != nil {
			t.Fatalf("seed %s: %v", r.ID, err)
		}
	}
}

func TestQueryInclusiveDateBounds(t *testing.T) {
	store := ledger.NewMemory()
	svc := NewService(store)
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	seedTransfers(t, store, base)

	// Bounds land exactly on t2 and t3 timestamps; both must be included.
	page, err := svc.Query(context.Background(), ledger.Filter{
		StartDate: base.Add(time.Hour),
		EndDate:   base.Add(2 * time.Hour),
	}, paging.NewRequest(1, 10))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if page.TotalCount != 2 {
		t.Fatalf("expected 2 transfers inside bounds, got %d", page.TotalCount)
	}
	for _, item := range page.Items {
		if item.ID != "t2" && item.ID != "t3" {
			t.Fatalf("unexpected transfer %s in window", item.ID)
		}
	}
}

func TestQueryWalletAndDateCombined(t *testing.T) {
	store := ledger.NewMemory()
	svc := NewService(store)
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	seedTransfers(t, store, base)

	page, err := svc.Query(context.Background(), ledger.Filter{
		WalletID:  "a",
		StartDate: base.Add(time.Hour),
	}, paging.NewRequest(1, 10))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	// t2 (a as destination) and t4 (a as origin); t1 predates the bound.
	if page.TotalCount != 2 {
		t.Fatalf("expected 2 transfers, got %d", page.TotalCount)
	}
}

func TestQueryPaginationMetadata(t *testing.T) {
	store := ledger.NewMemory()
	svc := NewService(store)
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	seedTransfers(t, store, base)

	page, err := svc.Query(context.Background(), ledger.Filter{}, paging.NewRequest(2, 3))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if page.TotalCount != 4 || page.Page != 2 || page.PageSize != 3 {
		t.Fatalf("unexpected page metadata: %+v", page)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected 1 item on the final page, got %d", len(page.Items))
	}
}
