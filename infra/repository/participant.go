package repository

import (
	"context"

	"github.com/amirasaad/payouts/pkg/domain"
	"github.com/amirasaad/payouts/pkg/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type participantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository returns a ParticipantRepository backed by db.
func NewParticipantRepository(db *gorm.DB) repository.ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*domain.Participant, error) {
	var row Participant
	if err := wrap(func() error {
		return r.db.WithContext(ctx).Where("username = ?", username).Take(&row).Error
	}); err != nil {
		return nil, err
	}
	return &domain.Participant{
		ID:       row.ID,
		Username: row.Username,
		Balance:  row.Balance,
		APIKey:   row.APIKey,
	}, nil
}

func (r *participantRepository) AdjustBalance(
	ctx context.Context,
	username string,
	delta decimal.Decimal,
) (decimal.Decimal, error) {
	var out struct {
		Balance decimal.Decimal
	}
	res := r.db.WithContext(ctx).Raw(
		"UPDATE participants SET balance = balance + ? WHERE username = ? RETURNING balance",
		delta, username,
	).Scan(&out)
	if res.Error != nil {
		return decimal.Zero, mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return decimal.Zero, domain.ErrNotFound
	}
	return out.Balance, nil
}
