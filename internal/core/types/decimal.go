// Package types provides the fixed-point arithmetic used for every ledger
// quantity and monetary amount.
package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// Quantity is a ledger quantity (kilograms, bags, tonnes) with full precision.
type Quantity = decimal.Decimal

// MustDecimal creates a decimal from a string, panics on error.
// Use only for constants and tests.
func MustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns the zero value every empty aggregate collapses to.
func Zero() decimal.Decimal {
	return decimal.Zero
}

// Coalesce returns the aggregate value or zero when the store produced NULL.
func Coalesce(v decimal.NullDecimal) decimal.Decimal {
	if !v.Valid {
		return decimal.Zero
	}
	return v.Decimal
}

// Sum adds values exactly. An empty call yields zero.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// SafeDiv divides numerator by denominator.
// A missing, zero or negative denominator yields zero.
func SafeDiv(numerator decimal.Decimal, denominator decimal.NullDecimal) decimal.Decimal {
	if !denominator.Valid || !denominator.Decimal.IsPositive() {
		return decimal.Zero
	}
	return numerator.Div(denominator.Decimal)
}

// Format renders a decimal with at least two fractional digits:
// 0 -> "0.00", 200 -> "200.00", 1/3 keeps its full division precision.
func Format(d decimal.Decimal) string {
	s := d.String()
	dot := strings.IndexByte(s, '.')
	if dot < 0 || len(s)-dot-1 < 2 {
		return d.StringFixed(2)
	}
	return s
}

// NullFrom wraps a decimal as a valid NullDecimal.
func NullFrom(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
