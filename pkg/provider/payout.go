package provider

import (
	"context"

	"github.com/shopspring/decimal"
)

// Response is a provider reply as received, status and body untouched.
type Response struct {
	StatusCode int
	Body       []byte
}

// SendMoneyRequest pays Amount USD worth of bitcoin to To.
type SendMoneyRequest struct {
	To     string
	Amount decimal.Decimal
	Notes  string
}

// Transfer is what a successful send reports back.
type Transfer struct {
	ProviderFeeCents int64
	BankFeeCents     int64
	// Subtotal is the USD amount debited before fees.
	Subtotal  decimal.Decimal
	BTCAmount string
}

// BitcoinExchange sends bitcoin bought with USD. Implementations never retry.
type BitcoinExchange interface {
	SendMoney(ctx context.Context, req SendMoneyRequest) (*Response, error)
	// Succeeded reports whether a 200 body says the transfer went through.
	Succeeded(body []byte) bool
	ParseTransfer(body []byte) (*Transfer, error)
}
