package domain

import "github.com/shopspring/decimal"

// NoAPIKey is the fragment an operator must type for a participant that never
// generated an API key.
const NoAPIKey = "None"

// KeyFragmentLen is the number of leading API key characters compared by the
// transcription check.
const KeyFragmentLen = 8

// Participant is the slice of the platform's participant row the payout tasks
// need. The row itself is owned by the platform.
type Participant struct {
	ID       int64
	Username string
	Balance  decimal.Decimal
	APIKey   *string
}

// KeyFragment returns the first KeyFragmentLen characters of the participant's
// API key, or NoAPIKey when the participant has none.
func (p *Participant) KeyFragment() string {
	if p.APIKey == nil {
		return NoAPIKey
	}
	key := *p.APIKey
	if len(key) > KeyFragmentLen {
		key = key[:KeyFragmentLen]
	}
	return key
}

// CanCover reports whether the balance covers amount.
func (p *Participant) CanCover(amount decimal.Decimal) bool {
	return p.Balance.GreaterThanOrEqual(amount)
}
