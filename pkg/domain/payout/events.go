package payout

import (
	"github.com/shopspring/decimal"
)

const (
	EventAddressSet  = "payout.address_set"
	EventBitcoinSent = "payout.bitcoin_sent"
)

// AddressSet is emitted after a payout route was inserted or overwritten.
type AddressSet struct {
	Username    string `json:"username"`
	Network     string `json:"network"`
	Address     string `json:"address"`
	RouteID     int64  `json:"route_id"`
	Overwritten bool   `json:"overwritten"`
}

func (e AddressSet) Type() string { return EventAddressSet }
func (e AddressSet) Key() string  { return e.Username }

// BitcoinSent is emitted after the provider confirmed a transfer and the
// ledger entry committed.
type BitcoinSent struct {
	Username   string          `json:"username"`
	Address    string          `json:"address"`
	ExchangeID int64           `json:"exchange_id"`
	Requested  decimal.Decimal `json:"requested"`
	NetSent    decimal.Decimal `json:"net_sent"`
	Amount     decimal.Decimal `json:"amount"`
	Fee        decimal.Decimal `json:"fee"`
	BTC        string          `json:"btc"`
	Balance    decimal.Decimal `json:"balance"`
}

func (e BitcoinSent) Type() string { return EventBitcoinSent }
func (e BitcoinSent) Key() string  { return e.Username }
