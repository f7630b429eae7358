package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"grana/internal/core"

	"github.com/shopspring/decimal"
)

// seedFile is the on-disk shape accepted by NewFromFile. Any section left
// out keeps the built-in defaults.
type seedFile struct {
	Users                 []core.User                `json:"users"`
	Wallets               []core.Wallet              `json:"wallets"`
	TransactionCategories []core.TransactionCategory `json:"transactionCategories"`
	InvestmentCategories  []core.InvestmentCategory  `json:"investmentCategories"`
	Transactions          []core.Transaction         `json:"transactions"`
}

// NewSeeded returns a store pre-populated with the demo household: two
// users, three wallets, the fixed category taxonomy and a handful of sample
// transactions.
func NewSeeded() *Store {
	s := New()
	s.users = defaultUsers()
	s.wallets = defaultWallets()
	s.cats = defaultTransactionCategories()
	s.investments = defaultInvestmentCategories()
	s.txs = defaultTransactions()
	return s
}

// NewFromFile loads seed data from a JSON file, falling back to the
// defaults for every section the file omits.
func NewFromFile(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	s := NewSeeded()
	if len(seed.Users) > 0 {
		s.users = seed.Users
	}
	if len(seed.Wallets) > 0 {
		s.wallets = seed.Wallets
	}
	if len(seed.TransactionCategories) > 0 {
		s.cats = seed.TransactionCategories
	}
	if len(seed.InvestmentCategories) > 0 {
		s.investments = seed.InvestmentCategories
	}
	if len(seed.Transactions) > 0 {
		s.txs = seed.Transactions
	}
	return s, nil
}

func defaultUsers() []core.User {
	return []core.User{
		{ID: "1", Name: "Você", Color: "bg-blue-500"},
		{ID: "2", Name: "Sua Esposa", Color: "bg-pink-500"},
	}
}

func defaultWallets() []core.Wallet {
	return []core.Wallet{
		{ID: "1", Name: "Débito", Balance: decimal.RequireFromString("1250.00")},
		{ID: "2", Name: "Crédito", Balance: decimal.RequireFromString("-500.00")},
		{ID: "3", Name: "Investimentos", Balance: decimal.RequireFromString("5000.00")},
	}
}

func defaultTransactionCategories() []core.TransactionCategory {
	return []core.TransactionCategory{
		{ID: "1", Name: "Restaurante", Type: core.KindExpense, Color: "bg-red-500"},
		{ID: "2", Name: "Supermercado", Type: core.KindExpense, Color: "bg-green-500"},
		{ID: "3", Name: "Moradia", Type: core.KindExpense, Color: "bg-blue-500"},
		{ID: "4", Name: "Transporte", Type: core.KindExpense, Color: "bg-yellow-500"},
		{ID: "5", Name: "Lazer", Type: core.KindExpense, Color: "bg-purple-500"},
		{ID: "6", Name: "Saúde", Type: core.KindExpense, Color: "bg-pink-500"},
		{ID: "7", Name: "Educação", Type: core.KindExpense, Color: "bg-indigo-500"},
		{ID: "8", Name: "Salário", Type: core.KindIncome, Color: "bg-green-600"},
		{ID: "9", Name: "Outras Receitas", Type: core.KindIncome, Color: "bg-emerald-500"},
	}
}

func defaultInvestmentCategories() []core.InvestmentCategory {
	return []core.InvestmentCategory{
		{
			ID: "1", Name: "Reserva de Emergência",
			Goal: decimal.NewFromInt(10000), Current: decimal.NewFromInt(5000),
			Color: "bg-green-500", CreatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "2", Name: "Viagem Europa",
			Goal: decimal.NewFromInt(8000), Current: decimal.NewFromInt(2500),
			Color: "bg-blue-500", CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "3", Name: "Carro Novo",
			Goal: decimal.NewFromInt(35000), Current: decimal.NewFromInt(15000),
			Color: "bg-purple-500", CreatedAt: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		},
	}
}

func defaultTransactions() []core.Transaction {
	endDate := time.Date(2027, 6, 8, 0, 0, 0, 0, time.UTC)
	return []core.Transaction{
		{
			ID: "1", Description: "Salário", Amount: decimal.RequireFromString("3500.00"),
			Type: core.Income, Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			WalletID: "1", UserID: "1", TransactionCategoryID: "8",
			Recurrence: &core.Recurrence{Type: core.FreqMonthly, IsInfinite: true},
		},
		{
			ID: "2", Description: "Supermercado", Amount: decimal.RequireFromString("250.00"),
			Type: core.Expense, Date: time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
			WalletID: "1", UserID: "2", TransactionCategoryID: "2",
		},
		{
			ID: "3", Description: "Freelance", Amount: decimal.RequireFromString("800.00"),
			Type: core.Income, Date: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			WalletID: "1", UserID: "1", TransactionCategoryID: "9",
		},
		{
			ID: "4", Description: "Financiamento Casa", Amount: decimal.RequireFromString("1200.00"),
			Type: core.Expense, Date: time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC),
			WalletID: "1", UserID: "1", TransactionCategoryID: "3",
			Recurrence: &core.Recurrence{Type: core.FreqMonthly, Repetitions: 36, EndDate: &endDate},
		},
		{
			ID: "5", Description: "Netflix", Amount: decimal.RequireFromString("45.00"),
			Type: core.Expense, Date: time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
			WalletID: "2", UserID: "2", TransactionCategoryID: "5",
			Recurrence: &core.Recurrence{Type: core.FreqMonthly, IsInfinite: true},
		},
	}
}
