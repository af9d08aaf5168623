package money

import "errors"

// Common money package errors
var (
	// ErrInvalidAmount is returned when an amount string is not a decimal number.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrTooManyDecimals is returned when an amount has sub-cent precision.
	ErrTooManyDecimals = errors.New("amount has more than two decimal places")

	// ErrNegativeAmount is returned when an amount must be positive but is not
	ErrNegativeAmount = errors.New("amount must be positive")

	// ErrMismatchedCurrencies is returned when a provider reports a currency other
	// than the one the payout was requested in
	ErrMismatchedCurrencies = errors.New("mismatched currencies")
)
