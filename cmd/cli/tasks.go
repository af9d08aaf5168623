package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/amirasaad/payouts/pkg/domain"
	"github.com/amirasaad/payouts/pkg/money"
	"github.com/amirasaad/payouts/pkg/service/payout"
)

const (
	setPayoutAddressDoc = "Link a PayPal e-mail or Bitcoin address as a participant's payout route."
	bitcoinPayoutDoc    = "Send a one-off bitcoin payout, fees included in the amount, and record it."
)

type task struct {
	name string
	doc  string
	run  func(c *cli, ctx context.Context, args []string) payout.Code
}

var tasks = []task{
	{
		name: payout.TaskSetPayoutAddress,
		doc:  setPayoutAddressDoc,
		run:  (*cli).setPayoutAddress,
	},
	{
		name: payout.TaskBitcoinPayout,
		doc:  bitcoinPayoutDoc,
		run:  (*cli).bitcoinPayout,
	},
}

func (c *cli) printCommands() {
	fmt.Fprintln(c.stderr, "Usage: payout <command> [flags]")
	fmt.Fprintln(c.stderr)
	fmt.Fprintln(c.stderr, "Commands:")
	w := tabwriter.NewWriter(c.stderr, 0, 4, 2, ' ', 0)
	for _, t := range tasks {
		fmt.Fprintf(w, "  %s\t%s\n", t.name, t.doc)
	}
	_ = w.Flush()
}

func (c *cli) newFlagSet(name, doc string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() { c.printUsage(fs, doc) }
	return fs
}

// printUsage writes the task's doc line and a name/help table of its flags.
func (c *cli) printUsage(fs *flag.FlagSet, doc string) {
	fmt.Fprintln(c.stderr, doc)
	fmt.Fprintln(c.stderr)
	fmt.Fprintf(c.stderr, "Usage: payout %s [flags]\n\n", fs.Name())
	w := tabwriter.NewWriter(c.stderr, 0, 4, 2, ' ', 0)
	fs.VisitAll(func(f *flag.Flag) {
		help := f.Usage
		if f.DefValue != "" && f.DefValue != "false" {
			help += fmt.Sprintf(" (default %s)", f.DefValue)
		}
		fmt.Fprintf(w, "  --%s\t%s\n", f.Name, help)
	})
	_ = w.Flush()
}

func (c *cli) usageError(fs *flag.FlagSet, format string, args ...any) payout.Code {
	failure.Fprintf(c.stderr, format+"\n\n", args...)
	fs.Usage()
	return payout.CodeInvalidInput
}

func parseFlags(fs *flag.FlagSet, args []string) (payout.Code, bool) {
	err := fs.Parse(args)
	switch {
	case err == nil:
		return payout.CodeOK, true
	case errors.Is(err, flag.ErrHelp):
		return payout.CodeOK, false
	default:
		return payout.CodeInvalidInput, false
	}
}

func (c *cli) setPayoutAddress(ctx context.Context, args []string) payout.Code {
	fs := c.newFlagSet(payout.TaskSetPayoutAddress, setPayoutAddressDoc)
	username := fs.String("username", "", "participant username")
	email := fs.String("email", "", "PayPal e-mail address")
	address := fs.String("address", "", "payout address, same as --email")
	network := fs.String("network", domain.NetworkPayPal.String(), "route network, paypal or bitcoin")
	fragment := fs.String("api-key-fragment", "", "first 8 characters of the participant's API key, None if they have none")
	overwrite := fs.Bool("overwrite", false, "replace an address already on file")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() > 0 {
		return c.usageError(fs, "unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	addr := *address
	if addr == "" {
		addr = *email
	}
	if *username == "" || addr == "" {
		return c.usageError(fs, "--username and --email are required")
	}
	n, err := domain.ParseNetwork(*network)
	if err != nil {
		return c.usageError(fs, "%v", err)
	}
	if err := domain.ValidateAddress(n, addr); err != nil {
		return c.usageError(fs, "%v", err)
	}

	svc, cleanup, err := c.setup(ctx, fs.Name())
	if err != nil {
		return c.fail(err)
	}
	defer cleanup()

	res, err := svc.SetPayoutAddress(ctx, payout.SetAddressRequest{
		Username:    *username,
		Network:     n,
		Address:     addr,
		KeyFragment: *fragment,
		Overwrite:   *overwrite,
	})
	if err != nil {
		return c.fail(err)
	}
	if res.Previous != "" {
		success.Fprintf(c.stdout, "Replaced %s %s address %s with %s\n", *username, n, res.Previous, res.Route.Address)
	} else {
		success.Fprintf(c.stdout, "Set %s %s address to %s\n", *username, n, res.Route.Address)
	}
	return payout.CodeOK
}

func (c *cli) bitcoinPayout(ctx context.Context, args []string) payout.Code {
	fs := c.newFlagSet(payout.TaskBitcoinPayout, bitcoinPayoutDoc)
	username := fs.String("username", "", "participant username")
	amount := fs.String("amount", "", "USD to take from the balance, fees included")
	fragment := fs.String("api-key-fragment", "", "first 8 characters of the participant's API key, None if they have none")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() > 0 {
		return c.usageError(fs, "unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if *username == "" || *amount == "" {
		return c.usageError(fs, "--username and --amount are required")
	}
	gross, err := money.Parse(*amount)
	if err != nil {
		return c.usageError(fs, "%v", err)
	}

	svc, cleanup, err := c.setup(ctx, fs.Name())
	if err != nil {
		return c.fail(err)
	}
	defer cleanup()

	res, err := svc.BitcoinPayout(ctx, payout.BitcoinPayoutRequest{
		Username:    *username,
		Amount:      gross,
		KeyFragment: *fragment,
	})
	if err != nil {
		return c.fail(err)
	}
	success.Fprintf(c.stdout, "Sent %s btc (%s USD) to %s\n", res.BTCAmount, money.Format(res.NetSent), res.Address)
	fmt.Fprintf(c.stdout, "Exchange %d recorded: amount %s, fee %s, new balance %s\n",
		res.ExchangeID, money.Format(res.Amount), money.Format(res.Fee), money.Format(res.Balance))
	return payout.CodeOK
}
