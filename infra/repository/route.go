package repository

import (
	"context"
	"errors"

	"github.com/amirasaad/payouts/pkg/domain"
	"github.com/amirasaad/payouts/pkg/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type routeRepository struct {
	db *gorm.DB
}

// NewRouteRepository returns a RouteRepository backed by db.
func NewRouteRepository(db *gorm.DB) repository.RouteRepository {
	return &routeRepository{db: db}
}

func (r *routeRepository) Get(
	ctx context.Context,
	participantID int64,
	network domain.Network,
) (*domain.Route, error) {
	var row ExchangeRoute
	if err := wrap(func() error {
		return r.db.WithContext(ctx).
			Where("participant = ? AND network = ?", participantID, network.String()).
			Order("id DESC").
			Take(&row).Error
	}); err != nil {
		return nil, err
	}
	return toDomainRoute(&row), nil
}

func (r *routeRepository) Upsert(ctx context.Context, route *domain.Route) error {
	existing, err := r.Get(ctx, route.ParticipantID, route.Network)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		row := fromDomainRoute(route)
		if err := wrap(func() error {
			return r.db.WithContext(ctx).Create(row).Error
		}); err != nil {
			return err
		}
		route.ID = row.ID
		return nil
	case err != nil:
		return err
	}

	route.ID = existing.ID
	return wrap(func() error {
		return r.db.WithContext(ctx).
			Model(&ExchangeRoute{}).
			Where("id = ?", existing.ID).
			Updates(map[string]any{
				"address": route.Address,
				"fee_cap": nullDecimal(route.FeeCap),
			}).Error
	})
}

func toDomainRoute(row *ExchangeRoute) *domain.Route {
	route := &domain.Route{
		ID:            row.ID,
		ParticipantID: row.Participant,
		Network:       domain.Network(row.Network),
		Address:       row.Address,
	}
	if row.FeeCap.Valid {
		feeCap := row.FeeCap.Decimal
		route.FeeCap = &feeCap
	}
	return route
}

func fromDomainRoute(route *domain.Route) *ExchangeRoute {
	return &ExchangeRoute{
		ID:          route.ID,
		Participant: route.ParticipantID,
		Network:     route.Network.String(),
		Address:     route.Address,
		FeeCap:      nullDecimal(route.FeeCap),
	}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}
