package config

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DefaultBootstrapKeys are the variables whose absence triggers a remote fetch.
var DefaultBootstrapKeys = []string{"DATABASE_URL"}

type options struct {
	envFiles      []string
	source        EnvSource
	bootstrapKeys []string
	logger        *slog.Logger
}

// Option configures Load.
type Option func(*options)

// WithEnvFiles tries each path, searching parent directories, until one loads.
func WithEnvFiles(paths ...string) Option {
	return func(o *options) { o.envFiles = append(o.envFiles, paths...) }
}

// WithSource sets the remote source used when bootstrap keys are missing.
func WithSource(src EnvSource) Option {
	return func(o *options) { o.source = src }
}

// WithBootstrapKeys adds keys to DefaultBootstrapKeys.
func WithBootstrapKeys(keys ...string) Option {
	return func(o *options) { o.bootstrapKeys = append(o.bootstrapKeys, keys...) }
}

// WithLogger sets the logger used while loading.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Load reads .env, fills missing bootstrap variables from the remote source
// and processes the environment into an App.
//
// Without WithSource, a HerokuSource is used when REMOTE_CONFIG_APP is set.
func Load(ctx context.Context, opts ...Option) (*App, error) {
	o := &options{
		bootstrapKeys: append([]string(nil), DefaultBootstrapKeys...),
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger

	loadDotEnv(logger, o.envFiles)

	src := o.source
	if src == nil {
		if app := lookupEnv("REMOTE_CONFIG_APP"); app != "" {
			src = &HerokuSource{App: app}
		}
	}
	if keys := missingKeys(o.bootstrapKeys); len(keys) > 0 && src != nil {
		logger.Info("Fetching remote config", "source", src.String(), "missing", keys)
		values, err := src.Fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("remote config from %s: %w", src, err)
		}
		set, err := fillUnset(values)
		if err != nil {
			return nil, err
		}
		logger.Info("Remote config applied", "vars", len(set))
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}

	logger.Info("App config loaded",
		"env", cfg.Env,
		"db", maskURL(cfg.DB.Url),
		"coinbase_api_url", cfg.Coinbase.ApiUrl,
		"coinbase_api_key", maskValue(cfg.Coinbase.ApiKey),
		"coinbase_api_secret", maskValue(cfg.Coinbase.ApiSecret),
		"minimum_bitcoin_payout", cfg.Payout.MinimumBitcoin.String(),
		"redis", maskURL(cfg.Redis.URL),
		"kafka_brokers", cfg.Kafka.Brokers,
		"pushgateway", cfg.Metrics.PushgatewayURL,
	)
	return &cfg, nil
}

func loadDotEnv(logger *slog.Logger, paths []string) {
	for _, path := range paths {
		found, err := findEnvFile(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path, "error", err)
			continue
		}
		if err := godotenv.Load(found); err != nil {
			logger.Error("Failed to load environment file", "path", found, "error", err)
			continue
		}
		logger.Info("Environment loaded from file", "path", found)
		return
	}
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using system environment variables")
	}
}
