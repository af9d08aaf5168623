package repository

import (
	"context"

	"github.com/amirasaad/payouts/pkg/domain"
	"github.com/amirasaad/payouts/pkg/repository"
	"gorm.io/gorm"
)

type exchangeRepository struct {
	db *gorm.DB
}

// NewExchangeRepository returns an ExchangeRepository backed by db.
func NewExchangeRepository(db *gorm.DB) repository.ExchangeRepository {
	return &exchangeRepository{db: db}
}

func (r *exchangeRepository) Create(ctx context.Context, exchange *domain.Exchange) error {
	row := Exchange{
		Timestamp:   exchange.Timestamp,
		Amount:      exchange.Amount,
		Fee:         exchange.Fee,
		Participant: exchange.Participant,
		Note:        exchange.Note,
		Status:      string(exchange.Status),
		Route:       exchange.RouteID,
	}
	if err := wrap(func() error {
		return r.db.WithContext(ctx).Create(&row).Error
	}); err != nil {
		return err
	}
	exchange.ID = row.ID
	return nil
}
