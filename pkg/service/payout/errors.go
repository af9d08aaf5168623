package payout

import (
	"errors"
	"fmt"

	"github.com/amirasaad/payouts/pkg/domain"
)

// Code is the process exit status an outcome maps to.
type Code int

const (
	CodeOK Code = iota
	// CodeInvalidInput covers missing and malformed operator input.
	CodeInvalidInput
	CodeUnknownParticipant
	// CodeRoute is "address already set" for set-payout-address and
	// "no bitcoin address" for bitcoin-payout.
	CodeRoute
	CodeInsufficientBalance
	CodeProviderStatus
	CodeProviderFailure
	// CodeLedger means the provider moved money but nothing was recorded.
	CodeLedger
)

var (
	ErrBelowMinimum     = errors.New("amount is below the minimum payout")
	ErrNoRoute          = errors.New("no payout route on file")
	ErrProviderRejected = errors.New("provider did not report success")
	ErrNoExchange       = errors.New("exchange credentials are not configured")
)

// Error carries the exit class of a failed task.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

func newError(code Code, err error) *Error {
	return &Error{Code: code, Err: err}
}

// CodeOf returns the exit class of err: CodeOK for nil, CodeInvalidInput for
// errors without one.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInvalidInput
}

// ProviderError is a provider reply that did not confirm the transfer.
type ProviderError struct {
	StatusCode int
	Body       []byte
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider returned %d", e.StatusCode)
}

// RouteExistsError reports the address already on file.
type RouteExistsError struct {
	Network domain.Network
	Address string
}

func (e *RouteExistsError) Error() string {
	return fmt.Sprintf("%s address is already set to %s", e.Network, e.Address)
}

func (e *RouteExistsError) Is(target error) bool { return target == domain.ErrAlreadyExists }

// KeyFragmentMismatch is the panic value raised when the operator's API key
// fragment does not match the participant. It is never returned as an error.
type KeyFragmentMismatch struct {
	Username string
	Given    string
}

func (k KeyFragmentMismatch) String() string {
	return fmt.Sprintf("api key fragment %q does not match participant %s", k.Given, k.Username)
}
