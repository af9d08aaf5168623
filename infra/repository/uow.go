package repository

import (
	"context"

	"github.com/amirasaad/payouts/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one abstraction.
// Repositories returned inside Do share the transaction.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn in a transaction. A returned error or a panic rolls it back.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// ParticipantRepository returns a participant repository bound to the current session.
func (u *UoW) ParticipantRepository() (repository.ParticipantRepository, error) {
	return NewParticipantRepository(u.session()), nil
}

// RouteRepository returns a route repository bound to the current session.
func (u *UoW) RouteRepository() (repository.RouteRepository, error) {
	return NewRouteRepository(u.session()), nil
}

// ExchangeRepository returns an exchange repository bound to the current session.
func (u *UoW) ExchangeRepository() (repository.ExchangeRepository, error) {
	return NewExchangeRepository(u.session()), nil
}
