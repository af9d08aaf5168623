// Package payout holds the fee arithmetic for exchange payouts.
package payout

import (
	"fmt"

	"github.com/amirasaad/payouts/pkg/money"
	"github.com/shopspring/decimal"
)

var (
	// BankFee is the flat fee taken before the provider percentage.
	BankFee = decimal.RequireFromString("0.15")
	// ProviderRate is the provider's percentage fee.
	ProviderRate = decimal.RequireFromString("0.01")
)

// ErrBelowFee is returned when the gross amount does not even cover the flat fee.
var ErrBelowFee = fmt.Errorf("amount does not cover the %s bank fee", BankFee)

// ProviderFee is the provider's 1% fee on net, rounded half-up to the cent.
func ProviderFee(net decimal.Decimal) decimal.Decimal {
	return money.Round(net.Mul(ProviderRate))
}

// SubtractFee returns the net amount to ask the provider to send so that the
// provider fees added back on top stay within gross.
//
// The search starts at gross minus the bank fee and steps down one cent at a
// time, checking after each step, so the result is always at least one cent
// below gross - BankFee. It stops at the first net whose net + ProviderFee(net)
// no longer exceeds that target.
func SubtractFee(gross decimal.Decimal) (decimal.Decimal, error) {
	target := gross.Sub(BankFee)
	if !target.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrBelowFee, money.Format(gross))
	}
	net := target
	for {
		net = net.Sub(money.Cent)
		if net.Add(ProviderFee(net)).LessThanOrEqual(target) {
			break
		}
	}
	if !net.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrBelowFee, money.Format(gross))
	}
	return net, nil
}

// FeeFromCents sums the provider and bank fees reported in cents.
func FeeFromCents(providerCents, bankCents int64) decimal.Decimal {
	return money.FromCents(providerCents + bankCents)
}
