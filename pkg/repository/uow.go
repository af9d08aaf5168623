package repository

import (
	"context"
)

// UnitOfWork scopes a group of repository calls to one transaction.
//
// Repositories taken from the UnitOfWork handed to Do share its transaction,
// so a ledger row and the balance update it implies commit or roll back together.
type UnitOfWork interface {
	// Do runs fn in a transaction that commits when fn returns nil and rolls
	// back otherwise.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	ParticipantRepository() (ParticipantRepository, error)
	RouteRepository() (RouteRepository, error)
	ExchangeRepository() (ExchangeRepository, error)
}
