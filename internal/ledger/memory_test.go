package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rezaamd/digitalwallet/internal/paging"
)

func tstamp(offset int) time.Time {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(offset) * time.Minute)
}

func TestMemoryStore_FindByID(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if _, err := s.FindByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	want := Transfer{ID: "t1", OriginID: "a", DestinationID: "b", Amount: 10, CreatedAt: tstamp(0)}
	if err := s.Create(ctx, want); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := s.FindByID(ctx, "t1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ID != "t1" || got.Amount != 10 {
		t.Fatalf("unexpected transfer: %+v", got)
	}
}

func TestMemoryStore_LatestForWalletTieBreak(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	// Two rows share a creation timestamp; the one inserted last must win
	// because balance derivation depends on it.
	ts := tstamp(0)
	first := Transfer{ID: "t1", OriginID: "a", DestinationID: "b", Amount: 5, DestinationBalance: 5, CreatedAt: ts}
	second := Transfer{ID: "t2", OriginID: "b", DestinationID: "a", Amount: 2, DestinationBalance: 2, CreatedAt: ts}
	if err := s.Create(ctx, first); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if err := s.Create(ctx, second); err != nil {
		t.Fatalf("create second: %v", err)
	}

	latest, err := s.LatestForWallet(ctx, "a")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest == nil || latest.ID != "t2" {
		t.Fatalf("expected t2 to win the tie, got %+v", latest)
	}
}

func TestMemoryStore_LatestForWalletOrdersByTimestamp(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	// An administrative back-dated insert must not displace the
	// chronologically newest row.
	if err := s.Create(ctx, Transfer{ID: "t1", OriginID: "a", DestinationID: "b", CreatedAt: tstamp(10)}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Create(ctx, Transfer{ID: "t0", OriginID: "a", DestinationID: "b", CreatedAt: tstamp(0)}); err != nil {
		t.Fatalf("create: %v", err)
	}

	latest, err := s.LatestForWallet(ctx, "a")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest == nil || latest.ID != "t1" {
		t.Fatalf("expected t1, got %+v", latest)
	}
}

func TestMemoryStore_LatestPairForWallets(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if err := s.Create(ctx, Transfer{ID: "t1", OriginID: "a", DestinationID: "b", CreatedAt: tstamp(0)}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Create(ctx, Transfer{ID: "t2", OriginID: "c", DestinationID: "a", CreatedAt: tstamp(1)}); err != nil {
		t.Fatalf("create: %v", err)
	}

	first, second, err := s.LatestPairForWallets(ctx, "a", "b")
	if err != nil {
		t.Fatalf("latest pair: %v", err)
	}
	if first == nil || first.ID != "t2" {
		t.Fatalf("expected t2 for wallet a, got %+v", first)
	}
	if second == nil || second.ID != "t1" {
		t.Fatalf("expected t1 for wallet b, got %+v", second)
	}

	_, none, err := s.LatestPairForWallets(ctx, "a", "zzz")
	if err != nil {
		t.Fatalf("latest pair: %v", err)
	}
	if none != nil {
		t.Fatalf("expected nil for wallet without history, got %+v", none)
	}
}

func TestMemoryStore_AppendConflictOnStaleHead(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	base := Transfer{ID: "t1", OriginID: "a", DestinationID: "b", CreatedAt: tstamp(0)}
	if err := s.Append(ctx, base, Heads{}); err != nil {
		t.Fatalf("append base: %v", err)
	}

	// Head moved: a writer that still believes wallet a has no history
	// must be rejected.
	stale := Transfer{ID: "t2", OriginID: "a", DestinationID: "c", CreatedAt: tstamp(1)}
	if err := s.Append(ctx, stale, Heads{Origin: "", Destination: ""}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	fresh := Transfer{ID: "t3", OriginID: "a", DestinationID: "c", CreatedAt: tstamp(1)}
	if err := s.Append(ctx, fresh, Heads{Origin: "t1", Destination: ""}); err != nil {
		t.Fatalf("append with current head: %v", err)
	}
}

func TestMemoryStore_HistoryFiltersAndPagination(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	for i, tr := range []Transfer{
		{ID: "t1", OriginID: "a", DestinationID: "b", CreatedAt: tstamp(0)},
		{ID: "t2", OriginID: "b", DestinationID: "c", CreatedAt: tstamp(1)},
		{ID: "t3", OriginID: "c", DestinationID: "a", CreatedAt: tstamp(2)},
		{ID: "t4", OriginID: "a", DestinationID: "c", CreatedAt: tstamp(3)},
	} {
		if err := s.Create(ctx, tr); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	// Wallet clause matches origin or destination.
	page, err := s.History(ctx, Filter{WalletID: "a"}, paging.NewRequest(1, 10))
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if page.TotalCount != 3 {
		t.Fatalf("expected 3 transfers for wallet a, got %d", page.TotalCount)
	}

	// Date bounds are inclusive on both ends.
	page, err = s.History(ctx, Filter{StartDate: tstamp(1), EndDate: tstamp(2)}, paging.NewRequest(1, 10))
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if page.TotalCount != 2 {
		t.Fatalf("expected 2 transfers in window, got %d", page.TotalCount)
	}

	// Paging through all rows returns each exactly once.
	seen := map[string]int{}
	for pageNum := 1; ; pageNum++ {
		page, err := s.History(ctx, Filter{}, paging.NewRequest(pageNum, 3))
		if err != nil {
			t.Fatalf("history page %d: %v", pageNum, err)
		}
		if len(page.Items) == 0 {
			break
		}
		for _, item := range page.Items {
			seen[item.ID]++
		}
	}
	if len(seen) != 4 {
		t.Fatalf("expected 4 distinct transfers, got %d", len(seen))
	}
	for id, count := range seen {
		if count != 1 {
			t.Fatalf("transfer %s returned %d times", id, count)
		}
	}
}

func TestMemoryStore_UpdateAndDelete(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	tr := Transfer{ID: "t1", OriginID: "a", DestinationID: "b", Amount: 10, CreatedAt: tstamp(0)}
	if err := s.Create(ctx, tr); err != nil {
		t.Fatalf("create: %v", err)
	}

	tr.Amount = 25
	if err := s.Update(ctx, tr); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := s.FindByID(ctx, "t1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Amount != 25 {
		t.Fatalf("expected updated amount 25, got %d", got.Amount)
	}

	if err := s.Delete(ctx, tr); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.FindByID(ctx, "t1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, tr); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}
