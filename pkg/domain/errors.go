package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrInsufficientBalance is returned when a participant cannot cover a payout
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrNegativeBalance is returned when a ledger update would leave a participant
	// with a negative balance; the surrounding transaction must be rolled back
	ErrNegativeBalance = errors.New("negative balance")
)
