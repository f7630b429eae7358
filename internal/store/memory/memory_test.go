package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"grana/internal/core"
	"grana/internal/store"

	"github.com/shopspring/decimal"
)

func sample(desc string) core.Transaction {
	return core.Transaction{
		Description: desc,
		Amount:      decimal.NewFromInt(10),
		Type:        core.Expense,
		Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		WalletID:    "1",
		UserID:      "1",
	}
}

func TestAddAssignsIDAndPrepends(t *testing.T) {
	s := New()
	ctx := context.Background()

	first, err := s.AddTransaction(ctx, sample("first"))
	if err != nil || first.ID == "" {
		t.Fatalf("add: id=%q err=%v", first.ID, err)
	}
	second, err := s.AddTransaction(ctx, sample("second"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	list, err := s.ListTransactions(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("list: n=%d err=%v", len(list), err)
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("newest transaction must come first: %v", list)
	}
}

func TestListReturnsSnapshot(t *testing.T) {
	s := New()
	ctx := context.Background()
	added, _ := s.AddTransaction(ctx, sample("a"))

	list, _ := s.ListTransactions(ctx)
	list[0].Description = "mutated"

	got, err := s.GetTransaction(ctx, added.ID)
	if err != nil || got.Description != "a" {
		t.Fatalf("store must not observe caller mutations: %+v err=%v", got, err)
	}
}

func TestUpdateAndRemove(t *testing.T) {
	s := New()
	ctx := context.Background()
	added, _ := s.AddTransaction(ctx, sample("a"))

	added.Description = "updated"
	if err := s.UpdateTransaction(ctx, added); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := s.GetTransaction(ctx, added.ID)
	if got.Description != "updated" {
		t.Fatalf("update not applied: %+v", got)
	}

	if err := s.RemoveTransaction(ctx, added.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := s.GetTransaction(ctx, added.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.UpdateTransaction(ctx, added); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("update of removed record should fail, got %v", err)
	}
	if err := s.RemoveTransaction(ctx, added.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second remove should fail, got %v", err)
	}
}

func TestInvestmentCategories(t *testing.T) {
	s := New()
	ctx := context.Background()

	added, err := s.AddInvestmentCategory(ctx, core.InvestmentCategory{
		Name: "Reserva", Goal: decimal.NewFromInt(1000), Current: decimal.Zero,
		Color: "bg-green-500", CreatedAt: time.Now(),
	})
	if err != nil || added.ID == "" {
		t.Fatalf("add: id=%q err=%v", added.ID, err)
	}

	added.Current = decimal.NewFromInt(200)
	if err := s.UpdateInvestmentCategory(ctx, added); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := s.GetInvestmentCategory(ctx, added.ID)
	if err != nil || !got.Current.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("get: %+v err=%v", got, err)
	}

	if _, err := s.GetInvestmentCategory(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNewSeededDefaults(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	users, _ := s.ListUsers(ctx)
	wallets, _ := s.ListWallets(ctx)
	cats, _ := s.ListTransactionCategories(ctx)
	invs, _ := s.ListInvestmentCategories(ctx)
	txs, _ := s.ListTransactions(ctx)

	if len(users) != 2 || len(wallets) != 3 || len(cats) != 9 || len(invs) != 3 || len(txs) != 5 {
		t.Fatalf("unexpected seed sizes: users=%d wallets=%d cats=%d invs=%d txs=%d",
			len(users), len(wallets), len(cats), len(invs), len(txs))
	}
	if cats[0].Name != "Restaurante" || cats[8].Name != "Outras Receitas" {
		t.Fatalf("category order must be preserved: %v", cats)
	}
}

func TestNewFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.json")
	content := `{"users":[{"id":"u1","name":"Tester","color":"bg-red-500"}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	s, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("NewFromFile: %v", err)
	}
	users, _ := s.ListUsers(context.Background())
	if len(users) != 1 || users[0].Name != "Tester" {
		t.Fatalf("seed file users not applied: %v", users)
	}
	// Omitted sections keep defaults.
	wallets, _ := s.ListWallets(context.Background())
	if len(wallets) != 3 {
		t.Fatalf("omitted wallets section should keep defaults, got %d", len(wallets))
	}

	if _, err := NewFromFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("missing file should error")
	}
	bad := filepath.Join(dir, "bad.json")
	_ = os.WriteFile(bad, []byte("{"), 0o644)
	if _, err := NewFromFile(bad); err == nil {
		t.Fatalf("malformed file should error")
	}
}
