// Package store defines the ports every data backend implements. The
// canonical store is in-memory; components receive these interfaces
// explicitly instead of reaching into ambient shared state.
package store

import (
	"context"
	"errors"

	"grana/internal/core"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

type (
	// TransactionStore owns the canonical transaction list. List returns a
	// read-only snapshot; Add assigns the record its id.
	TransactionStore interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
		GetTransaction(ctx context.Context, id string) (core.Transaction, error)
		AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		UpdateTransaction(ctx context.Context, t core.Transaction) error
		RemoveTransaction(ctx context.Context, id string) error
	}

	// ReferenceStore exposes the read-mostly lookup tables.
	ReferenceStore interface {
		ListWallets(ctx context.Context) ([]core.Wallet, error)
		ListUsers(ctx context.Context) ([]core.User, error)
		ListTransactionCategories(ctx context.Context) ([]core.TransactionCategory, error)
	}

	// InvestmentStore owns the investment-goal categories.
	InvestmentStore interface {
		ListInvestmentCategories(ctx context.Context) ([]core.InvestmentCategory, error)
		GetInvestmentCategory(ctx context.Context, id string) (core.InvestmentCategory, error)
		AddInvestmentCategory(ctx context.Context, c core.InvestmentCategory) (core.InvestmentCategory, error)
		UpdateInvestmentCategory(ctx context.Context, c core.InvestmentCategory) error
	}
)
