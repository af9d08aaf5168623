package initializer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/payouts/infra"
	"github.com/amirasaad/payouts/infra/cache"
	infra_eventbus "github.com/amirasaad/payouts/infra/eventbus"
	"github.com/amirasaad/payouts/infra/metrics"
	"github.com/amirasaad/payouts/infra/provider/coinbase"
	infra_repository "github.com/amirasaad/payouts/infra/repository"
	"github.com/amirasaad/payouts/pkg/config"
	"github.com/amirasaad/payouts/pkg/eventbus"
	"github.com/amirasaad/payouts/pkg/provider"
	"github.com/amirasaad/payouts/pkg/repository"
)

// Runtime is everything one CLI invocation needs, plus what to tear down.
type Runtime struct {
	Deps    config.Deps
	Metrics *metrics.Recorder
	cfg     *config.App
	closers []func() error
}

// Options let callers replace the database-backed unit of work.
type Options struct {
	Uow repository.UnitOfWork
}

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App, opts Options) (rt *Runtime, err error) {
	logger := SetupLogger(cfg.Log)
	rt = &Runtime{Metrics: metrics.New(), cfg: cfg}
	defer func() {
		if err != nil {
			_ = rt.Close()
			rt = nil
		}
	}()

	uow := opts.Uow
	if uow == nil {
		db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
		if err != nil {
			logger.Error("Failed to initialize database", "error", err)
			return rt, err
		}
		if sqlDB, err := db.DB(); err == nil {
			rt.closers = append(rt.closers, sqlDB.Close)
		}
		uow = infra_repository.NewUoW(db)
	}

	exchange, err := newExchange(cfg, logger, rt)
	if err != nil {
		return rt, err
	}

	var publisher eventbus.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		kp, err := infra_eventbus.NewWithKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		if err != nil {
			return rt, fmt.Errorf("failed to create Kafka publisher: %w", err)
		}
		rt.closers = append(rt.closers, kp.Close)
		publisher = kp
	} else {
		publisher = infra_eventbus.NewWithMemory(logger)
	}

	rt.Deps = config.Deps{
		Uow:       uow,
		Exchange:  exchange,
		Publisher: publisher,
		Logger:    logger,
		Config:    cfg,
	}
	return rt, nil
}

// newExchange returns nil when no credentials are configured; only
// bitcoin-payout needs them.
func newExchange(cfg *config.App, logger *slog.Logger, rt *Runtime) (provider.BitcoinExchange, error) {
	creds := coinbase.Credentials{Key: cfg.Coinbase.ApiKey, Secret: cfg.Coinbase.ApiSecret}
	if !creds.Valid() {
		logger.Debug("Coinbase credentials not configured")
		return nil, nil
	}

	var nonce coinbase.NonceSource = coinbase.NewClockNonce()
	if cfg.Redis.URL != "" {
		client, err := cache.NewRedisClient(cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, client.Close)
		nonce = cache.NewRedisNonce(client, cfg.Redis.NoncePrefix, creds.Key, logger)
		logger.Info("Using Redis nonce floor", "prefix", cfg.Redis.NoncePrefix)
	}

	return coinbase.New(creds, logger,
		coinbase.WithBaseURL(cfg.Coinbase.ApiUrl),
		coinbase.WithNonceSource(nonce),
	), nil
}

// PushMetrics sends this run's metrics when a Pushgateway is configured.
func (rt *Runtime) PushMetrics(ctx context.Context) error {
	if rt == nil || rt.cfg.Metrics.PushgatewayURL == "" {
		return nil
	}
	return rt.Metrics.Push(ctx, rt.cfg.Metrics.PushgatewayURL, rt.cfg.Metrics.Job)
}

// Close releases connections in reverse order of creation.
func (rt *Runtime) Close() error {
	if rt == nil {
		return nil
	}
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}
