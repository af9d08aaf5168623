package main

import (
	"errors"
	"fmt"

	"github.com/amirasaad/payouts/pkg/service/payout"
	"github.com/fatih/color"
)

var (
	success = color.New(color.FgGreen, color.Bold)
	failure = color.New(color.FgRed, color.Bold)
	notice  = color.New(color.FgYellow)
)

// fail reports err on stdout and returns its exit status. Provider bodies are
// printed verbatim.
func (c *cli) fail(err error) payout.Code {
	code := payout.CodeOf(err)
	failure.Fprintf(c.stdout, "%s failed: %v\n", codeLabel(code), err)

	var exists *payout.RouteExistsError
	if errors.As(err, &exists) {
		notice.Fprintf(c.stdout, "Current %s address: %s (pass --overwrite to replace it)\n", exists.Network, exists.Address)
	}
	var perr *payout.ProviderError
	if errors.As(err, &perr) && len(perr.Body) > 0 {
		fmt.Fprintln(c.stdout, string(perr.Body))
	}
	if code == payout.CodeLedger {
		notice.Fprintln(c.stdout, "The provider sent the money. Record the exchange by hand.")
	}
	return code
}

func codeLabel(code payout.Code) string {
	switch code {
	case payout.CodeUnknownParticipant:
		return "lookup"
	case payout.CodeRoute:
		return "route"
	case payout.CodeInsufficientBalance:
		return "balance"
	case payout.CodeProviderStatus, payout.CodeProviderFailure:
		return "provider"
	case payout.CodeLedger:
		return "ledger"
	default:
		return "task"
	}
}
