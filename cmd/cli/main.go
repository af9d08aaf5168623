// Command payout runs the operator payout tasks against the production
// database and exchange.
//
//	payout set-payout-address --username=alice --email=alice@example.com
//	payout bitcoin-payout --username=alice --amount=100 --api-key-fragment=abcdefgh
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/amirasaad/payouts/infra/initializer"
	"github.com/amirasaad/payouts/pkg/config"
	"github.com/amirasaad/payouts/pkg/service/payout"
)

// taskRunner is the part of payout.Service the tasks call.
type taskRunner interface {
	SetPayoutAddress(ctx context.Context, req payout.SetAddressRequest) (*payout.SetAddressResult, error)
	BitcoinPayout(ctx context.Context, req payout.BitcoinPayoutRequest) (*payout.BitcoinPayoutResult, error)
}

// setupFunc builds the service for task. The returned cleanup runs once the
// task finishes, panics included.
type setupFunc func(ctx context.Context, task string) (taskRunner, func(), error)

type cli struct {
	stdout io.Writer
	stderr io.Writer
	setup  setupFunc
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	c := &cli{stdout: os.Stdout, stderr: os.Stderr, setup: setupService}
	code := c.run(ctx, os.Args[1:])
	stop()
	os.Exit(int(code))
}

func setupService(ctx context.Context, task string) (taskRunner, func(), error) {
	opts := []config.Option{config.WithEnvFiles(".env")}
	if task == payout.TaskBitcoinPayout {
		opts = append(opts, config.WithBootstrapKeys("COINBASE_API_KEY"))
	}
	cfg, err := config.Load(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load application configuration: %w", err)
	}

	rt, err := initializer.InitializeDependencies(cfg, initializer.Options{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	cleanup := func() {
		logger := rt.Deps.Logger
		if err := rt.PushMetrics(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("Failed to push metrics", "error", err)
		}
		if err := rt.Close(); err != nil {
			logger.Warn("Failed to close connections", "error", err)
		}
	}
	return payout.NewService(rt.Deps, payout.WithMetrics(rt.Metrics)), cleanup, nil
}

// run dispatches args to a task and returns the exit status. A key fragment
// mismatch aborts the task; it is reported here and nowhere else.
func (c *cli) run(ctx context.Context, args []string) (code payout.Code) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		mismatch, ok := r.(payout.KeyFragmentMismatch)
		if !ok {
			panic(r)
		}
		failure.Fprintf(c.stdout, "assertion failed: %s\n", mismatch)
		code = payout.CodeInvalidInput
	}()

	if len(args) == 0 {
		c.printCommands()
		return payout.CodeInvalidInput
	}
	for _, t := range tasks {
		if t.name == args[0] {
			return t.run(c, ctx, args[1:])
		}
	}
	fmt.Fprintf(c.stderr, "unknown command %q\n\n", args[0])
	c.printCommands()
	return payout.CodeInvalidInput
}
