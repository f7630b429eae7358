// Package services provides business logic on top of the domain model and
// the store ports.
//
// This file implements the recurrence amortizer: it projects a recurring
// transaction onto a canonical monthly-equivalent amount and the total still
// owed over the life of the recurrence. Each supported frequency has its own
// converter; frequencies without a registered converter contribute zero to
// monthly aggregates. That gap is deliberate: daily, biweekly, bimonthly,
// quarterly, semester and custom recurrences are accepted by the data model
// but are not amortized until a converter is registered for them.
package services

import (
	"grana/internal/core"

	"github.com/shopspring/decimal"
)

// MonthlyConverter normalizes an amount at some frequency to a per-month figure.
type MonthlyConverter interface {
	PerMonth(amount decimal.Decimal) decimal.Decimal
}

// MonthlyRate passes the amount through unchanged.
type MonthlyRate struct{}

func (MonthlyRate) PerMonth(amount decimal.Decimal) decimal.Decimal { return amount }

// WeeklyRate multiplies by the mean number of weeks per month.
type WeeklyRate struct{}

// weeksPerMonth approximates 52 weeks over 12 months.
var weeksPerMonth = decimal.RequireFromString("4.33")

func (WeeklyRate) PerMonth(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(weeksPerMonth)
}

// YearlyRate spreads the amount over twelve months.
type YearlyRate struct{}

var monthsPerYear = decimal.NewFromInt(12)

func (YearlyRate) PerMonth(amount decimal.Decimal) decimal.Decimal {
	return amount.Div(monthsPerYear)
}

// monthlyConverters maps frequencies to their converters. Only the three
// frequencies below are amortized; anything else falls through to zero.
var monthlyConverters = map[core.Frequency]MonthlyConverter{
	core.FreqMonthly: MonthlyRate{},
	core.FreqWeekly:  WeeklyRate{},
	core.FreqYearly:  YearlyRate{},
}

// RegisterMonthlyConverter adds or replaces the converter for a frequency,
// allowing the unsupported-frequency gap to be closed without touching the
// aggregation code.
func RegisterMonthlyConverter(freq core.Frequency, conv MonthlyConverter) {
	monthlyConverters[freq] = conv
}

// MonthlyEquivalent converts an amount at the given frequency to a per-month
// figure. Unsupported frequencies yield zero rather than an error.
func MonthlyEquivalent(amount decimal.Decimal, freq core.Frequency) decimal.Decimal {
	conv, ok := monthlyConverters[freq]
	if !ok {
		return decimal.Zero
	}
	return conv.PerMonth(amount)
}

// TotalRemaining computes the amount still owed for one recurrence given its
// monthly-equivalent amount. Precedence: an infinite recurrence is unbounded
// even when repetitions are also set. With repetitions R the first occurrence
// counts as already realized, leaving monthly x (R-1). Repetitions of zero or
// below are treated as unset. EndDate is display-only and never drives the
// total.
func TotalRemaining(monthly decimal.Decimal, rec *core.Recurrence) core.Remaining {
	if rec == nil {
		return core.FiniteRemaining(decimal.Zero)
	}
	if rec.IsInfinite {
		return core.InfiniteRemaining()
	}
	if rec.Repetitions > 0 {
		months := decimal.NewFromInt(int64(rec.Repetitions - 1))
		return core.FiniteRemaining(monthly.Mul(months))
	}
	return core.FiniteRemaining(decimal.Zero)
}

// SummarizeRecurringExpenses aggregates every recurring expense into one
// monthly total and one remaining total. A single infinite recurrence makes
// the aggregate remaining total unbounded.
func SummarizeRecurringExpenses(transactions []core.Transaction) core.RecurringSummary {
	summary := core.RecurringSummary{
		MonthlyTotal:   decimal.Zero,
		TotalRemaining: core.FiniteRemaining(decimal.Zero),
	}
	for _, t := range transactions {
		if t.Type != core.Expense || !t.IsRecurring() {
			continue
		}
		monthly := MonthlyEquivalent(t.Amount, t.Recurrence.Type)
		summary.MonthlyTotal = summary.MonthlyTotal.Add(monthly)
		summary.TotalRemaining = summary.TotalRemaining.Add(TotalRemaining(monthly, t.Recurrence))
	}
	return summary
}

// SummarizeRecurringIncome returns the monthly-equivalent total over all
// recurring income. No remaining total is computed for income.
func SummarizeRecurringIncome(transactions []core.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		if t.Type != core.Income || !t.IsRecurring() {
			continue
		}
		total = total.Add(MonthlyEquivalent(t.Amount, t.Recurrence.Type))
	}
	return total
}

// RecurringExpenseDetails expands the recurring expense aggregate into one
// row per transaction for display.
func RecurringExpenseDetails(transactions []core.Transaction) []core.RecurringExpenseDetail {
	var details []core.RecurringExpenseDetail
	for _, t := range transactions {
		if t.Type != core.Expense || !t.IsRecurring() {
			continue
		}
		monthly := MonthlyEquivalent(t.Amount, t.Recurrence.Type)
		details = append(details, core.RecurringExpenseDetail{
			ID:             t.ID,
			Description:    t.Description,
			MonthlyAmount:  monthly,
			EndDate:        t.Recurrence.EndDate,
			IsInfinite:     t.Recurrence.IsInfinite,
			TotalRemaining: TotalRemaining(monthly, t.Recurrence),
		})
	}
	return details
}
