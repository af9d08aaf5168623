package repository

import (
	"context"

	"github.com/amirasaad/payouts/pkg/domain"
	"github.com/shopspring/decimal"
)

// ParticipantRepository defines data access for the platform's participants.
type ParticipantRepository interface {
	// GetByUsername returns domain.ErrNotFound when no participant has username.
	GetByUsername(ctx context.Context, username string) (*domain.Participant, error)
	// AdjustBalance adds delta to the participant's balance and returns the
	// balance after the update.
	AdjustBalance(ctx context.Context, username string, delta decimal.Decimal) (decimal.Decimal, error)
}

// RouteRepository defines data access for payout routes.
type RouteRepository interface {
	// Get returns domain.ErrNotFound when the participant has no route on network.
	Get(ctx context.Context, participantID int64, network domain.Network) (*domain.Route, error)
	// Upsert inserts the route, or overwrites address and fee cap of the
	// existing route for the same participant and network.
	Upsert(ctx context.Context, route *domain.Route) error
}

// ExchangeRepository defines data access for exchange ledger rows.
// Rows are append-only; there is no update or delete.
type ExchangeRepository interface {
	// Create inserts the exchange and sets its ID.
	Create(ctx context.Context, exchange *domain.Exchange) error
}
