// Package memory implements the store ports over mutex-guarded slices.
// Every read hands out copies, so callers always see a consistent snapshot.
package memory

import (
	"context"
	"sync"

	"grana/internal/core"
	"grana/internal/store"

	"github.com/google/uuid"
)

type Store struct {
	mu          sync.Mutex
	txs         []core.Transaction
	wallets     []core.Wallet
	users       []core.User
	cats        []core.TransactionCategory
	investments []core.InvestmentCategory
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// ListTransactions returns a snapshot of the canonical list, newest first.
func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.txs...), nil
}

func (s *Store) GetTransaction(_ context.Context, id string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.txs {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Transaction{}, store.ErrNotFound
}

// AddTransaction assigns an id and prepends the record, keeping the newest
// transaction at the head of the list.
func (s *Store) AddTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append([]core.Transaction{t}, s.txs...)
	return t, nil
}

func (s *Store) UpdateTransaction(_ context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.txs {
		if s.txs[i].ID == t.ID {
			s.txs[i] = t
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) RemoveTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.txs {
		if s.txs[i].ID == id {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) ListWallets(_ context.Context) ([]core.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Wallet(nil), s.wallets...), nil
}

func (s *Store) ListUsers(_ context.Context) ([]core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.User(nil), s.users...), nil
}

func (s *Store) ListTransactionCategories(_ context.Context) ([]core.TransactionCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.TransactionCategory(nil), s.cats...), nil
}

func (s *Store) ListInvestmentCategories(_ context.Context) ([]core.InvestmentCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.InvestmentCategory(nil), s.investments...), nil
}

func (s *Store) GetInvestmentCategory(_ context.Context, id string) (core.InvestmentCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.investments {
		if c.ID == id {
			return c, nil
		}
	}
	return core.InvestmentCategory{}, store.ErrNotFound
}

func (s *Store) AddInvestmentCategory(_ context.Context, c core.InvestmentCategory) (core.InvestmentCategory, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.investments = append(s.investments, c)
	return c, nil
}

func (s *Store) UpdateInvestmentCategory(_ context.Context, c core.InvestmentCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.investments {
		if s.investments[i].ID == c.ID {
			s.investments[i] = c
			return nil
		}
	}
	return store.ErrNotFound
}
