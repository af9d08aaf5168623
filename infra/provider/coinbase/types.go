package coinbase

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/amirasaad/payouts/pkg/money"
	"github.com/amirasaad/payouts/pkg/provider"
	"github.com/shopspring/decimal"
)

// ErrMalformedTransfer is returned when a success body cannot be read as a transfer.
var ErrMalformedTransfer = errors.New("coinbase: malformed transfer")

type sendMoneyTransaction struct {
	To                string `json:"to"`
	AmountString      string `json:"amount_string"`
	AmountCurrencyISO string `json:"amount_currency_iso"`
	Notes             string `json:"notes"`
	InstantBuy        bool   `json:"instant_buy"`
}

type sendMoneyRequest struct {
	Transaction sendMoneyTransaction `json:"transaction"`
}

func sendMoneyBody(p provider.SendMoneyRequest) ([]byte, error) {
	return json.Marshal(sendMoneyRequest{
		Transaction: sendMoneyTransaction{
			To:                p.To,
			AmountString:      money.Format(p.Amount),
			AmountCurrencyISO: money.USD.String(),
			Notes:             p.Notes,
			InstantBuy:        true,
		},
	})
}

// Cents decodes a JSON number or numeric string holding whole cents.
type Cents int64

func (c *Cents) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		return fmt.Errorf("%w: empty cents", ErrMalformedTransfer)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: cents %q: %v", ErrMalformedTransfer, s, err)
	}
	*c = Cents(n)
	return nil
}

type feeBody struct {
	Cents       Cents  `json:"cents"`
	CurrencyISO string `json:"currency_iso"`
}

type transferBody struct {
	Success  *bool    `json:"success"`
	Errors   []string `json:"errors"`
	Transfer *struct {
		Fees struct {
			Coinbase *feeBody `json:"coinbase"`
			Bank     *feeBody `json:"bank"`
		} `json:"fees"`
		Subtotal *struct {
			Amount   string `json:"amount"`
			Currency string `json:"currency"`
		} `json:"subtotal"`
		BTC *struct {
			Amount   string `json:"amount"`
			Currency string `json:"currency"`
		} `json:"btc"`
	} `json:"transfer"`
}

// Succeeded reports whether body carries "success": true. Unreadable bodies
// report false.
func Succeeded(body []byte) bool {
	var tb transferBody
	if err := json.Unmarshal(body, &tb); err != nil {
		return false
	}
	return tb.Success != nil && *tb.Success
}

// ParseTransfer reads the fees, subtotal and bitcoin amount of a successful
// send_money response. All money fields must be in USD.
func ParseTransfer(body []byte) (*provider.Transfer, error) {
	var tb transferBody
	if err := json.Unmarshal(body, &tb); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTransfer, err)
	}
	if tb.Transfer == nil {
		return nil, fmt.Errorf("%w: missing transfer", ErrMalformedTransfer)
	}
	fees := tb.Transfer.Fees
	if fees.Coinbase == nil || fees.Bank == nil {
		return nil, fmt.Errorf("%w: missing fees", ErrMalformedTransfer)
	}
	if fees.Coinbase.CurrencyISO != money.USD.String() || fees.Bank.CurrencyISO != money.USD.String() {
		return nil, fmt.Errorf("%w: %w: fees in %s/%s, want USD", ErrMalformedTransfer,
			money.ErrMismatchedCurrencies, fees.Coinbase.CurrencyISO, fees.Bank.CurrencyISO)
	}
	sub := tb.Transfer.Subtotal
	if sub == nil {
		return nil, fmt.Errorf("%w: missing subtotal", ErrMalformedTransfer)
	}
	if sub.Currency != money.USD.String() {
		return nil, fmt.Errorf("%w: %w: subtotal in %s, want USD", ErrMalformedTransfer,
			money.ErrMismatchedCurrencies, sub.Currency)
	}
	subtotal, err := decimal.NewFromString(sub.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: subtotal %q: %v", ErrMalformedTransfer, sub.Amount, err)
	}
	if tb.Transfer.BTC == nil || tb.Transfer.BTC.Amount == "" {
		return nil, fmt.Errorf("%w: missing btc amount", ErrMalformedTransfer)
	}
	if c := tb.Transfer.BTC.Currency; c != "" && c != money.BTC.String() {
		return nil, fmt.Errorf("%w: %w: btc amount in %s", ErrMalformedTransfer, money.ErrMismatchedCurrencies, c)
	}
	return &provider.Transfer{
		ProviderFeeCents: int64(fees.Coinbase.Cents),
		BankFeeCents:     int64(fees.Bank.Cents),
		Subtotal:         subtotal,
		BTCAmount:        tb.Transfer.BTC.Amount,
	}, nil
}
