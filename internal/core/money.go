// Package core provides the domain model shared by the ledger, the
// recurrence amortizer and the transaction text interpreter.
//
// This file contains parsing and formatting of monetary amounts. Amounts are
// decimal.Decimal values so that the amortization arithmetic (x4.33, /12)
// stays exact instead of accumulating float error.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MaxAmount is the largest accepted transaction amount.
var MaxAmount = decimal.RequireFromString("999999.99")

// ParseAmount converts a decimal string into a positive amount.
//
// It accepts both dot (55.90) and comma (55,90) decimal separators, the
// comma being the common Brazilian notation. Signs are rejected; amounts are
// magnitudes and direction is expressed by the transaction type.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if err := ValidateAmount(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// ValidateAmount checks that an amount is positive and within range.
func ValidateAmount(d decimal.Decimal) error {
	if !d.IsPositive() {
		return ErrInvalidAmount
	}
	if d.GreaterThan(MaxAmount) {
		return ErrInvalidAmount
	}
	return nil
}

// FormatBRL renders an amount in Brazilian currency notation, e.g. "R$ 55,90".
// Display only; calculations always stay in decimal.
func FormatBRL(d decimal.Decimal) string {
	s := d.StringFixed(2)
	return "R$ " + strings.ReplaceAll(s, ".", ",")
}
