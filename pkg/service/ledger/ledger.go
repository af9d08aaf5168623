// Package ledger records confirmed money movements: one exchange row and the
// balance change it implies, committed together.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/payouts/pkg/domain"
	"github.com/amirasaad/payouts/pkg/repository"
	"github.com/shopspring/decimal"
)

// Entry is a movement the provider has already confirmed.
type Entry struct {
	Participant string
	RouteID     int64
	// Amount is negative for payouts.
	Amount decimal.Decimal
	Fee    decimal.Decimal
	Note   string
}

// Result is what the committed transaction produced.
type Result struct {
	ExchangeID int64
	Balance    decimal.Decimal
}

// Recorder writes ledger entries through a UnitOfWork.
type Recorder struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Recorder.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{uow: uow, logger: logger, now: time.Now}
}

// Record inserts the exchange, then applies amount minus fee to the balance.
// A negative resulting balance returns domain.ErrNegativeBalance and neither
// write is kept.
func (r *Recorder) Record(ctx context.Context, e Entry) (*Result, error) {
	logger := r.logger.With("participant", e.Participant, "route", e.RouteID)
	exchange := &domain.Exchange{
		Timestamp:   r.now().UTC(),
		Amount:      e.Amount,
		Fee:         e.Fee,
		Participant: e.Participant,
		Note:        e.Note,
		Status:      domain.ExchangeSucceeded,
		RouteID:     e.RouteID,
	}

	var balance decimal.Decimal
	err := r.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		exchanges, err := uow.ExchangeRepository()
		if err != nil {
			return err
		}
		if err := exchanges.Create(ctx, exchange); err != nil {
			return fmt.Errorf("insert exchange: %w", err)
		}

		participants, err := uow.ParticipantRepository()
		if err != nil {
			return err
		}
		balance, err = participants.AdjustBalance(ctx, e.Participant, exchange.BalanceDelta())
		if err != nil {
			return fmt.Errorf("update balance: %w", err)
		}
		if balance.IsNegative() {
			return fmt.Errorf("%w: %s would have %s", domain.ErrNegativeBalance, e.Participant, balance)
		}
		return nil
	})
	if err != nil {
		logger.Error("Ledger entry rolled back", "error", err)
		return nil, err
	}

	logger.Info("Exchange recorded", "exchange_id", exchange.ID, "balance", balance.String())
	return &Result{ExchangeID: exchange.ID, Balance: balance}, nil
}
