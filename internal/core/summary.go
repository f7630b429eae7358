package core

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Remaining is the total still owed over the life of a recurrence. Infinite
// marks the unbounded sentinel for recurrences with no defined end; callers
// must format it as "infinite" rather than do arithmetic on the amount.
type Remaining struct {
	Amount   decimal.Decimal `json:"amount"`
	Infinite bool            `json:"infinite"`
}

// MarshalJSON renders unbounded totals as {"infinite": true} with no amount
// field; clients must format them as "infinite", never do arithmetic.
func (r Remaining) MarshalJSON() ([]byte, error) {
	if r.Infinite {
		return []byte(`{"infinite":true}`), nil
	}
	return json.Marshal(struct {
		Amount decimal.Decimal `json:"amount"`
	}{r.Amount})
}

// Add sums two remaining totals. Infinite is absorbing: once any operand is
// unbounded the result stays unbounded.
func (r Remaining) Add(o Remaining) Remaining {
	if r.Infinite || o.Infinite {
		return Remaining{Infinite: true}
	}
	return Remaining{Amount: r.Amount.Add(o.Amount)}
}

// FiniteRemaining wraps a finite amount.
func FiniteRemaining(amount decimal.Decimal) Remaining {
	return Remaining{Amount: amount}
}

// InfiniteRemaining is the unbounded sentinel.
func InfiniteRemaining() Remaining {
	return Remaining{Infinite: true}
}

// RecurringSummary aggregates all recurring expenses into a single
// monthly-equivalent total and the total still owed.
type RecurringSummary struct {
	MonthlyTotal   decimal.Decimal `json:"monthlyTotal"`
	TotalRemaining Remaining       `json:"totalRemaining"`
}

// RecurringExpenseDetail is the per-transaction expansion of the recurring
// expense aggregate, one row per recurring expense.
type RecurringExpenseDetail struct {
	ID             string          `json:"id"`
	Description    string          `json:"description"`
	MonthlyAmount  decimal.Decimal `json:"monthlyAmount"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
	IsInfinite     bool            `json:"isInfinite"`
	TotalRemaining Remaining       `json:"totalRemaining"`
}
