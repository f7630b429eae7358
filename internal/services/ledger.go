package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"grana/internal/core"
	applog "grana/internal/log"
	"grana/internal/store"

	"github.com/shopspring/decimal"
)

// ErrSameWallet is returned when a transfer names the same wallet twice.
var ErrSameWallet = errors.New("transfer wallets must differ")

// Ledger orchestrates every mutation and aggregate over the stores. It is
// handed its dependencies explicitly so tests can swap in fakes.
type Ledger struct {
	transactions store.TransactionStore
	refs         store.ReferenceStore
	investments  store.InvestmentStore

	// investmentWalletID is the wallet investment movements book against.
	investmentWalletID string

	logger *applog.Logger
}

func NewLedger(
	transactions store.TransactionStore,
	refs store.ReferenceStore,
	investments store.InvestmentStore,
	investmentWalletID string,
	logger *applog.Logger,
) *Ledger {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Ledger{
		transactions:       transactions,
		refs:               refs,
		investments:        investments,
		investmentWalletID: investmentWalletID,
		logger:             logger.WithComponent(applog.ComponentLedger),
	}
}

// AddTransaction validates and stores a new transaction. Validation failure
// leaves the store untouched.
func (l *Ledger) AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("validate transaction: %w", err)
	}
	added, err := l.transactions.AddTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}
	l.logger.InfoContext(ctx, "transaction recorded",
		applog.FieldOperation, applog.OpCreate,
		applog.FieldTransactionID, added.ID,
		applog.FieldAmount, added.Amount.String(),
		applog.FieldWalletID, added.WalletID)
	return added, nil
}

// UpdateTransaction replaces an existing record wholesale.
func (l *Ledger) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("validate transaction: %w", err)
	}
	if err := l.transactions.UpdateTransaction(ctx, t); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	l.logger.InfoContext(ctx, "transaction updated",
		applog.FieldOperation, applog.OpUpdate,
		applog.FieldTransactionID, t.ID)
	return nil
}

// RemoveRecurringTransaction drops a recurring transaction from the ledger.
func (l *Ledger) RemoveRecurringTransaction(ctx context.Context, id string) error {
	if err := l.transactions.RemoveTransaction(ctx, id); err != nil {
		return fmt.Errorf("remove transaction: %w", err)
	}
	l.logger.InfoContext(ctx, "recurring transaction removed",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldTransactionID, id)
	return nil
}

// CommitDraft turns a confirmed interpreter draft into a stored transaction.
// Ambiguous drafts are rejected: the user must resolve the recurrence choice
// first. Recurring drafts are committed as infinite monthly recurrences, the
// interpreter's only recurrence shape.
func (l *Ledger) CommitDraft(ctx context.Context, draft Draft, walletID, userID string) (core.Transaction, error) {
	if draft.Nature == NatureAmbiguous {
		return core.Transaction{}, ErrAmbiguousDraft
	}
	t := core.Transaction{
		Description:           draft.Description,
		Amount:                draft.Amount,
		Type:                  draft.Type,
		Date:                  time.Now(),
		WalletID:              walletID,
		UserID:                userID,
		TransactionCategoryID: draft.CategoryID,
	}
	if draft.Nature == NatureRecurring {
		t.Recurrence = &core.Recurrence{Type: core.FreqMonthly, IsInfinite: true}
	}
	added, err := l.AddTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, err
	}
	l.logger.InfoContext(ctx, "draft committed",
		applog.FieldOperation, applog.OpCommit,
		applog.FieldTransactionID, added.ID,
		applog.FieldNature, string(draft.Nature))
	return added, nil
}

// Transfer moves an amount between two wallets as an expense/income pair.
// Both legs are recorded; there is no rollback path because in-memory adds
// cannot fail after validation.
func (l *Ledger) Transfer(ctx context.Context, fromWalletID, toWalletID string, amount decimal.Decimal, date time.Time, userID string) (out, in core.Transaction, err error) {
	if fromWalletID == toWalletID {
		return core.Transaction{}, core.Transaction{}, ErrSameWallet
	}
	if err := core.ValidateAmount(amount); err != nil {
		return core.Transaction{}, core.Transaction{}, err
	}
	fromName, toName, err := l.walletNames(ctx, fromWalletID, toWalletID)
	if err != nil {
		return core.Transaction{}, core.Transaction{}, err
	}

	out, err = l.AddTransaction(ctx, core.Transaction{
		Description: "Transferência para " + toName,
		Amount:      amount,
		Type:        core.Expense,
		Date:        date,
		WalletID:    fromWalletID,
		UserID:      userID,
	})
	if err != nil {
		return core.Transaction{}, core.Transaction{}, err
	}
	in, err = l.AddTransaction(ctx, core.Transaction{
		Description: "Transferência de " + fromName,
		Amount:      amount,
		Type:        core.Income,
		Date:        date,
		WalletID:    toWalletID,
		UserID:      userID,
	})
	if err != nil {
		return core.Transaction{}, core.Transaction{}, err
	}
	l.logger.InfoContext(ctx, "transfer recorded",
		applog.FieldOperation, applog.OpTransfer,
		applog.FieldAmount, amount.String(),
		"from_wallet_id", fromWalletID,
		"to_wallet_id", toWalletID)
	return out, in, nil
}

func (l *Ledger) walletNames(ctx context.Context, fromID, toID string) (fromName, toName string, err error) {
	wallets, err := l.refs.ListWallets(ctx)
	if err != nil {
		return "", "", fmt.Errorf("list wallets: %w", err)
	}
	for _, w := range wallets {
		switch w.ID {
		case fromID:
			fromName = w.Name
		case toID:
			toName = w.Name
		}
	}
	if fromName == "" || toName == "" {
		return "", "", store.ErrNotFound
	}
	return fromName, toName, nil
}

// AddInvestmentCategory creates a goal category with nothing accumulated yet.
func (l *Ledger) AddInvestmentCategory(ctx context.Context, name string, goal decimal.Decimal, color string) (core.InvestmentCategory, error) {
	c := core.InvestmentCategory{
		Name:      name,
		Goal:      goal,
		Current:   decimal.Zero,
		Color:     color,
		CreatedAt: time.Now(),
	}
	if err := c.Validate(); err != nil {
		return core.InvestmentCategory{}, fmt.Errorf("validate investment category: %w", err)
	}
	added, err := l.investments.AddInvestmentCategory(ctx, c)
	if err != nil {
		return core.InvestmentCategory{}, fmt.Errorf("add investment category: %w", err)
	}
	l.logger.InfoContext(ctx, "investment category created",
		applog.FieldOperation, applog.OpCreate,
		applog.FieldCategoryID, added.ID)
	return added, nil
}

// UpdateInvestmentCategory replaces a goal category (rename, new goal).
func (l *Ledger) UpdateInvestmentCategory(ctx context.Context, c core.InvestmentCategory) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validate investment category: %w", err)
	}
	if err := l.investments.UpdateInvestmentCategory(ctx, c); err != nil {
		return fmt.Errorf("update investment category: %w", err)
	}
	return nil
}

// ApplyInvestmentMovement records a deposit (income) or withdrawal (expense)
// against a goal category: it books the transaction on the investment wallet
// and adjusts the accumulated amount, clamped at zero.
func (l *Ledger) ApplyInvestmentMovement(ctx context.Context, categoryID, description string, amount decimal.Decimal, movement core.TransactionType, userID string) (core.InvestmentCategory, error) {
	category, err := l.investments.GetInvestmentCategory(ctx, categoryID)
	if err != nil {
		return core.InvestmentCategory{}, fmt.Errorf("get investment category: %w", err)
	}

	_, err = l.AddTransaction(ctx, core.Transaction{
		Description: description,
		Amount:      amount,
		Type:        movement,
		Date:        time.Now(),
		WalletID:    l.investmentWalletID,
		UserID:      userID,
		CategoryID:  categoryID,
	})
	if err != nil {
		return core.InvestmentCategory{}, err
	}

	current := category.Current.Add(amount)
	if movement == core.Expense {
		current = category.Current.Sub(amount)
	}
	if current.IsNegative() {
		current = decimal.Zero
	}
	category.Current = current
	if err := l.investments.UpdateInvestmentCategory(ctx, category); err != nil {
		return core.InvestmentCategory{}, fmt.Errorf("update investment category: %w", err)
	}
	return category, nil
}

// InvestmentCategories lists every investment-goal category.
func (l *Ledger) InvestmentCategories(ctx context.Context) ([]core.InvestmentCategory, error) {
	cats, err := l.investments.ListInvestmentCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list investment categories: %w", err)
	}
	return cats, nil
}

// InvestmentCategory fetches a single goal category.
func (l *Ledger) InvestmentCategory(ctx context.Context, id string) (core.InvestmentCategory, error) {
	c, err := l.investments.GetInvestmentCategory(ctx, id)
	if err != nil {
		return core.InvestmentCategory{}, fmt.Errorf("get investment category: %w", err)
	}
	return c, nil
}

// FilteredTransactions returns the transactions passing every set filter.
func (l *Ledger) FilteredTransactions(ctx context.Context, f core.Filters) ([]core.Transaction, error) {
	all, err := l.transactions.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	out := make([]core.Transaction, 0, len(all))
	for _, t := range all {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// TotalBalance is income minus expenses over the whole ledger.
func (l *Ledger) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	all, err := l.transactions.ListTransactions(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("list transactions: %w", err)
	}
	total := decimal.Zero
	for _, t := range all {
		if t.Type == core.Income {
			total = total.Add(t.Amount)
		} else {
			total = total.Sub(t.Amount)
		}
	}
	return total, nil
}

// IncomeTotal sums all income amounts.
func (l *Ledger) IncomeTotal(ctx context.Context) (decimal.Decimal, error) {
	return l.sumByType(ctx, core.Income)
}

// ExpenseTotal sums all expense amounts.
func (l *Ledger) ExpenseTotal(ctx context.Context) (decimal.Decimal, error) {
	return l.sumByType(ctx, core.Expense)
}

func (l *Ledger) sumByType(ctx context.Context, tt core.TransactionType) (decimal.Decimal, error) {
	all, err := l.transactions.ListTransactions(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("list transactions: %w", err)
	}
	total := decimal.Zero
	for _, t := range all {
		if t.Type == tt {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

// RecurringExpenses aggregates the recurring expenses via the amortizer.
func (l *Ledger) RecurringExpenses(ctx context.Context) (core.RecurringSummary, error) {
	all, err := l.transactions.ListTransactions(ctx)
	if err != nil {
		return core.RecurringSummary{}, fmt.Errorf("list transactions: %w", err)
	}
	return SummarizeRecurringExpenses(all), nil
}

// RecurringExpenseDetails expands the recurring expenses one row per record.
func (l *Ledger) RecurringExpenseDetails(ctx context.Context) ([]core.RecurringExpenseDetail, error) {
	all, err := l.transactions.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return RecurringExpenseDetails(all), nil
}

// MonthlyRecurringIncome is the monthly-equivalent total of recurring income.
func (l *Ledger) MonthlyRecurringIncome(ctx context.Context) (decimal.Decimal, error) {
	all, err := l.transactions.ListTransactions(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("list transactions: %w", err)
	}
	return SummarizeRecurringIncome(all), nil
}

// Categories returns the live transaction category list, as consumed by the
// interpreter for category resolution.
func (l *Ledger) Categories(ctx context.Context) ([]core.TransactionCategory, error) {
	cats, err := l.refs.ListTransactionCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// Wallets returns the wallet reference list.
func (l *Ledger) Wallets(ctx context.Context) ([]core.Wallet, error) {
	wallets, err := l.refs.ListWallets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	return wallets, nil
}

// Users returns the household user list.
func (l *Ledger) Users(ctx context.Context) ([]core.User, error) {
	users, err := l.refs.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
