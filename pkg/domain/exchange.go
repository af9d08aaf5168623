package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeStatus is the lifecycle state recorded on an exchange row.
type ExchangeStatus string

// ExchangeSucceeded is the only status the payout tasks write: rows are
// recorded after the provider has confirmed the transfer.
const ExchangeSucceeded ExchangeStatus = "succeeded"

// Exchange is an append-only ledger row for one money movement.
//
// Invariants:
//   - Amount is negative for payouts.
//   - Fee is non-negative and is charged on top of Amount.
//   - Rows are never mutated once written.
type Exchange struct {
	ID          int64
	Timestamp   time.Time
	Amount      decimal.Decimal
	Fee         decimal.Decimal
	Participant string
	Note        string
	Status      ExchangeStatus
	RouteID     int64
}

// BalanceDelta is the change the exchange applies to the participant balance.
func (e *Exchange) BalanceDelta() decimal.Decimal {
	return e.Amount.Sub(e.Fee)
}
