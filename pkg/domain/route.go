package domain

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Network identifies where a payout route sends money.
type Network string

const (
	// NetworkPayPal routes pay out through PayPal MassPay to an e-mail address.
	NetworkPayPal Network = "paypal"
	// NetworkBitcoin routes pay out to a Bitcoin address through the exchange.
	NetworkBitcoin Network = "bitcoin"
)

// ParseNetwork maps an operator supplied network name to a Network.
func ParseNetwork(s string) (Network, error) {
	switch n := Network(strings.ToLower(strings.TrimSpace(s))); n {
	case NetworkPayPal, NetworkBitcoin:
		return n, nil
	default:
		return "", fmt.Errorf("%w: unknown network %q", ErrValidation, s)
	}
}

// String returns the network name as stored in exchange_routes.network.
func (n Network) String() string { return string(n) }

// Route is a stored payout destination linked to one participant.
type Route struct {
	ID            int64
	ParticipantID int64
	Network       Network
	Address       string
	// FeeCap is the provider fee ceiling; nil when the network has none.
	FeeCap *decimal.Decimal
}

var validate = validator.New()

// bitcoinParams is the chain addresses are decoded against.
var bitcoinParams = &chaincfg.MainNetParams

// ValidateAddress checks that address is usable on network.
func ValidateAddress(network Network, address string) error {
	switch network {
	case NetworkPayPal:
		if err := validate.Var(address, "required,email"); err != nil {
			return fmt.Errorf("%w: %q is not a valid PayPal e-mail", ErrValidation, address)
		}
		return nil
	case NetworkBitcoin:
		addr, err := btcutil.DecodeAddress(address, bitcoinParams)
		if err != nil {
			return fmt.Errorf("%w: %q is not a valid bitcoin address: %v", ErrValidation, address, err)
		}
		if !addr.IsForNet(bitcoinParams) {
			return fmt.Errorf("%w: %q is not a %s address", ErrValidation, address, bitcoinParams.Name)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown network %q", ErrValidation, network)
	}
}
