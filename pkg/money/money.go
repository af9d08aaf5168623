// Package money provides fixed-point helpers for USD ledger amounts.
//
// Invariants:
//   - Amounts are shopspring decimals, never float64.
//   - Rounding is half-up (ties away from zero) to two places everywhere a fee
//     or a ledger value is computed.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places kept for USD amounts.
const Places int32 = 2

// Cent is the smallest USD step.
var Cent = decimal.New(1, -Places)

// Round rounds d half-up to two decimal places.
// shopspring rounds ties away from zero, which is half-up for the positive
// amounts fees are computed on and mirrors it for negative ledger amounts.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Parse parses an operator supplied USD amount such as "12.50".
// Invariants enforced:
//   - The value must be a plain decimal number.
//   - It must not carry more than two decimal places.
//   - It must be strictly positive.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !d.Equal(Round(d)) {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrTooManyDecimals, s)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNegativeAmount, s)
	}
	return d, nil
}

// FromCents converts an integer number of cents to dollars.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -Places)
}

// Format renders d with exactly two decimal places, the form the provider
// expects in amount_string.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}
