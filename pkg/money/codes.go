package money

// Code represents a currency code (e.g., "USD").
type Code string

// Currency codes the payout tasks deal in. Provider bodies are only accepted in USD.
const (
	USD Code = "USD" // US Dollar
	BTC Code = "BTC" // Bitcoin, as reported by the exchange
)

// String returns the string representation of the currency code.
func (c Code) String() string {
	return string(c)
}
