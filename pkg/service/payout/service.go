// Package payout runs the operator payout tasks: linking a payout address and
// sending a one-off bitcoin payout.
//
// Provider calls happen before any ledger write, and a failed provider call
// leaves the database untouched. Nothing is retried.
package payout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/payouts/pkg/config"
	"github.com/amirasaad/payouts/pkg/domain"
	"github.com/amirasaad/payouts/pkg/eventbus"
	"github.com/amirasaad/payouts/pkg/provider"
	"github.com/amirasaad/payouts/pkg/repository"
	"github.com/amirasaad/payouts/pkg/service/ledger"
	"github.com/shopspring/decimal"
)

// DefaultKeyFragment is assumed when the operator gives no fragment. It can
// never match a real key, so the check then fails closed.
const DefaultKeyFragment = "unknown!"

// Task names, as used for metrics and logs.
const (
	TaskSetPayoutAddress = "set-payout-address"
	TaskBitcoinPayout    = "bitcoin-payout"
)

// Metrics receives task outcomes and provider latency.
type Metrics interface {
	TaskFinished(task, outcome string)
	ObserveProviderRequest(d time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) TaskFinished(string, string)          {}
func (noopMetrics) ObserveProviderRequest(time.Duration) {}

// Settings are the tunables read from configuration.
type Settings struct {
	MinimumBitcoin decimal.Decimal
	PayPalFeeCap   decimal.Decimal
	Notes          string
}

// DefaultSettings match the platform's historical constants.
func DefaultSettings() Settings {
	return Settings{
		MinimumBitcoin: decimal.NewFromInt(1),
		PayPalFeeCap:   decimal.NewFromInt(20),
		Notes:          "Gratipay Bitcoin Payout",
	}
}

// Service runs the payout tasks.
type Service struct {
	uow       repository.UnitOfWork
	exchange  provider.BitcoinExchange
	ledger    *ledger.Recorder
	publisher eventbus.Publisher
	metrics   Metrics
	settings  Settings
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithSettings overrides the settings taken from deps.Config.
func WithSettings(st Settings) Option {
	return func(s *Service) { s.settings = st }
}

// NewService creates a new Service with the provided dependencies.
func NewService(deps config.Deps, opts ...Option) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		uow:       deps.Uow,
		exchange:  deps.Exchange,
		ledger:    ledger.New(deps.Uow, logger),
		publisher: deps.Publisher,
		metrics:   noopMetrics{},
		settings:  settingsFrom(deps.Config),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func settingsFrom(cfg *config.App) Settings {
	st := DefaultSettings()
	if cfg == nil || cfg.Payout == nil {
		return st
	}
	if cfg.Payout.MinimumBitcoin.IsPositive() {
		st.MinimumBitcoin = cfg.Payout.MinimumBitcoin
	}
	if cfg.Payout.PayPalFeeCap.IsPositive() {
		st.PayPalFeeCap = cfg.Payout.PayPalFeeCap
	}
	if cfg.Payout.Notes != "" {
		st.Notes = cfg.Payout.Notes
	}
	return st
}

// checkKeyFragment panics with KeyFragmentMismatch unless fragment matches the
// participant's API key, or is NoAPIKey for a participant without one.
func checkKeyFragment(p *domain.Participant, fragment string) {
	if fragment == "" {
		fragment = DefaultKeyFragment
	}
	if p.KeyFragment() != fragment {
		panic(KeyFragmentMismatch{Username: p.Username, Given: fragment})
	}
}

func (s *Service) loadParticipant(
	ctx context.Context,
	uow repository.UnitOfWork,
	username string,
) (*domain.Participant, error) {
	repo, err := uow.ParticipantRepository()
	if err != nil {
		return nil, err
	}
	p, err := repo.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, newError(CodeUnknownParticipant, fmt.Errorf("no participant found with username %q", username))
	}
	return p, err
}

func (s *Service) emit(ctx context.Context, event eventbus.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Emit(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event", "type", event.Type(), "error", err)
	}
}

// finish records the task outcome. A panic is recorded as aborted and
// allowed to continue.
func (s *Service) finish(task string, err *error) {
	if r := recover(); r != nil {
		s.metrics.TaskFinished(task, "aborted")
		panic(r)
	}
	s.metrics.TaskFinished(task, outcome(*err))
}

func outcome(err error) string {
	switch CodeOf(err) {
	case CodeOK:
		return "success"
	case CodeInvalidInput:
		return "invalid_input"
	case CodeUnknownParticipant:
		return "unknown_participant"
	case CodeRoute:
		return "route"
	case CodeInsufficientBalance:
		return "insufficient_balance"
	case CodeProviderStatus:
		return "provider_status"
	case CodeProviderFailure:
		return "provider_failure"
	case CodeLedger:
		return "ledger"
	default:
		return "error"
	}
}
