package config

import (
	"log/slog"

	"github.com/amirasaad/payouts/pkg/eventbus"
	"github.com/amirasaad/payouts/pkg/provider"
	"github.com/amirasaad/payouts/pkg/repository"
)

// Deps holds the infrastructure the payout tasks run against.
type Deps struct {
	Uow repository.UnitOfWork
	// Exchange is nil when no exchange credentials are configured.
	Exchange  provider.BitcoinExchange
	Publisher eventbus.Publisher
	Logger    *slog.Logger
	Config    *App
}
