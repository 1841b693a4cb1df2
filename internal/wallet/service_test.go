package wallet

import (
	"context"
	"testing"
)

func TestServiceCreateAndLookup(t *testing.T) {
	svc := NewService(NewMemory())
	ctx := context.Background()

	bankID := "bank-1"
	created, err := svc.Create(ctx, CreateInput{BankID: &bankID, Seed: "seed-1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated wallet id")
	}

	fetched, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Seed != "seed-1" || fetched.BankID == nil || *fetched.BankID != bankID {
		t.Fatalf("unexpected wallet: %+v", fetched)
	}

	bySeed, err := svc.GetBySeed(ctx, "seed-1", &bankID)
	if err != nil {
		t.Fatalf("get by seed: %v", err)
	}
	if bySeed.ID != created.ID {
		t.Fatalf("seed lookup returned %s, want %s", bySeed.ID, created.ID)
	}
}

func TestServiceGeneratesSeedWhenOmitted(t *testing.T) {
	svc := NewService(NewMemory())

	created, err := svc.Create(context.Background(), CreateInput{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Seed == "" {
		t.Fatalf("expected a generated seed")
	}
	if created.BankID != nil {
		t.Fatalf("expected a root wallet, got bank %v", *created.BankID)
	}
}
