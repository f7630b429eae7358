package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	FreqNone      Frequency = "none"
	FreqDaily     Frequency = "daily"
	FreqWeekly    Frequency = "weekly"
	FreqBiweekly  Frequency = "biweekly"
	FreqMonthly   Frequency = "monthly"
	FreqBimonthly Frequency = "bimonthly"
	FreqQuarterly Frequency = "quarterly"
	FreqSemester  Frequency = "semester"
	FreqYearly    Frequency = "yearly"
	FreqCustom    Frequency = "custom"
)

const (
	KindIncome  CategoryKind = "income"
	KindExpense CategoryKind = "expense"
	KindBoth    CategoryKind = "both"
)

type (
	TransactionType string

	Frequency string

	// CategoryKind restricts which transaction direction a category accepts.
	CategoryKind string

	// Recurrence describes the repeat behavior attached to a transaction.
	// IsInfinite and a finite termination may both be set; infinite wins
	// when computing remaining totals.
	Recurrence struct {
		Type        Frequency  `json:"type"`
		Repetitions int        `json:"repetitions,omitempty"`
		EndDate     *time.Time `json:"endDate,omitempty"`
		IsInfinite  bool       `json:"isInfinite,omitempty"`
	}

	// Transaction is a single income or expense record. Amount is a positive
	// magnitude; direction is carried by Type, not sign. CategoryID points at
	// an investment category, TransactionCategoryID at an ordinary category;
	// the two are orthogonal and neither is validated against live data here.
	Transaction struct {
		ID                    string          `json:"id"`
		Description           string          `json:"description"`
		Amount                decimal.Decimal `json:"amount"`
		Type                  TransactionType `json:"type"`
		Date                  time.Time       `json:"date"`
		WalletID              string          `json:"walletId"`
		UserID                string          `json:"userId"`
		CategoryID            string          `json:"categoryId,omitempty"`
		TransactionCategoryID string          `json:"transactionCategoryId,omitempty"`
		Recurrence            *Recurrence     `json:"recurrence,omitempty"`
	}

	Wallet struct {
		ID      string          `json:"id"`
		Name    string          `json:"name"`
		Balance decimal.Decimal `json:"balance"`
	}

	User struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Avatar string `json:"avatar,omitempty"`
		Color  string `json:"color"`
	}

	TransactionCategory struct {
		ID    string       `json:"id"`
		Name  string       `json:"name"`
		Type  CategoryKind `json:"type"`
		Color string       `json:"color"`
	}

	// InvestmentCategory tracks progress toward a savings goal. Current is
	// adjusted by associated movement transactions and never drops below zero.
	InvestmentCategory struct {
		ID        string          `json:"id"`
		Name      string          `json:"name"`
		Goal      decimal.Decimal `json:"goal"`
		Current   decimal.Decimal `json:"current"`
		Color     string          `json:"color"`
		CreatedAt time.Time       `json:"createdAt"`
	}

	// Filters narrows a transaction listing. Zero values mean "no constraint";
	// Type accepts income, expense or the empty string for all.
	Filters struct {
		StartDate *time.Time
		EndDate   *time.Time
		Type      TransactionType
		WalletID  string
		UserID    string
	}
)

const maxDescriptionLen = 100

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long (max 100 characters)")
	ErrMissingWallet      = errors.New("missing wallet")
	ErrMissingUser        = errors.New("missing user")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidRepetitions = errors.New("repetitions must be positive")
	ErrInvalidFrequency   = errors.New("invalid recurrence frequency")
	ErrInvalidGoal        = errors.New("goal must be positive")
	ErrEmptyName          = errors.New("empty name")
)

// IsRecurring reports whether the transaction repeats: a recurrence must be
// present and its frequency must not be "none".
func (t Transaction) IsRecurring() bool {
	return t.Recurrence != nil && t.Recurrence.Type != FreqNone && t.Recurrence.Type != ""
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > maxDescriptionLen {
		return ErrDescriptionTooLong
	}
	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}
	if t.Type != Income && t.Type != Expense {
		return errors.New("type must be income or expense")
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if strings.TrimSpace(t.WalletID) == "" {
		return ErrMissingWallet
	}
	if strings.TrimSpace(t.UserID) == "" {
		return ErrMissingUser
	}
	if t.Recurrence != nil {
		if err := t.Recurrence.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r Recurrence) Validate() error {
	switch r.Type {
	case FreqNone, FreqDaily, FreqWeekly, FreqBiweekly, FreqMonthly,
		FreqBimonthly, FreqQuarterly, FreqSemester, FreqYearly, FreqCustom:
	default:
		return ErrInvalidFrequency
	}
	if r.Repetitions < 0 {
		return ErrInvalidRepetitions
	}
	return nil
}

func (c InvestmentCategory) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	if !c.Goal.IsPositive() {
		return ErrInvalidGoal
	}
	if c.Current.IsNegative() {
		return errors.New("current amount cannot be negative")
	}
	return nil
}

// Matches reports whether the transaction passes every set filter.
func (f Filters) Matches(t Transaction) bool {
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.StartDate != nil && t.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && t.Date.After(*f.EndDate) {
		return false
	}
	if f.WalletID != "" && t.WalletID != f.WalletID {
		return false
	}
	if f.UserID != "" && t.UserID != f.UserID {
		return false
	}
	return true
}
