package payout

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/amirasaad/payouts/pkg/domain"
	payoutdomain "github.com/amirasaad/payouts/pkg/domain/payout"
	"github.com/amirasaad/payouts/pkg/provider"
	"github.com/amirasaad/payouts/pkg/repository"
	"github.com/amirasaad/payouts/pkg/service/ledger"
	"github.com/shopspring/decimal"
)

// BitcoinPayoutRequest sends Amount USD, fees included, to the participant's
// bitcoin route.
type BitcoinPayoutRequest struct {
	Username    string
	Amount      decimal.Decimal
	KeyFragment string
}

// BitcoinPayoutResult is a payout that reached the ledger.
type BitcoinPayoutResult struct {
	ExchangeID int64
	Balance    decimal.Decimal
	Address    string
	BTCAmount  string
	// NetSent is what the provider was asked to send.
	NetSent decimal.Decimal
	// Amount is the ledger amount, the negated provider subtotal.
	Amount decimal.Decimal
	Fee    decimal.Decimal
}

// BitcoinPayout sends a one-off bitcoin payout and records it.
//
// Every check runs before the provider call. Once the provider confirms, a
// failure to record the exchange is returned with CodeLedger and the
// provider body, so the operator can reconcile by hand.
func (s *Service) BitcoinPayout(ctx context.Context, req BitcoinPayoutRequest) (res *BitcoinPayoutResult, err error) {
	defer s.finish(TaskBitcoinPayout, &err)

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return nil, newError(CodeInvalidInput, fmt.Errorf("%w: username is required", domain.ErrValidation))
	}
	if req.Amount.LessThan(s.settings.MinimumBitcoin) {
		return nil, newError(CodeInvalidInput, fmt.Errorf("%w: %s < %s", ErrBelowMinimum, req.Amount, s.settings.MinimumBitcoin))
	}
	net, err := payoutdomain.SubtractFee(req.Amount)
	if err != nil {
		return nil, newError(CodeInvalidInput, err)
	}
	logger := s.logger.With("task", TaskBitcoinPayout, "username", req.Username)

	var participant *domain.Participant
	var route *domain.Route
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		participant, err = s.loadParticipant(ctx, uow, req.Username)
		if err != nil {
			return err
		}
		routes, err := uow.RouteRepository()
		if err != nil {
			return err
		}
		route, err = routes.Get(ctx, participant.ID, domain.NetworkBitcoin)
		if errors.Is(err, domain.ErrNotFound) {
			return newError(CodeRoute, fmt.Errorf("%w: %s has not linked a bitcoin address", ErrNoRoute, req.Username))
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Fetched bitcoin address", "address", route.Address)

	if !participant.CanCover(req.Amount) {
		return nil, newError(CodeInsufficientBalance, fmt.Errorf("%w: %s only has %s, needs %s",
			domain.ErrInsufficientBalance, req.Username, participant.Balance.StringFixed(2), req.Amount.StringFixed(2)))
	}

	checkKeyFragment(participant, req.KeyFragment)

	if s.exchange == nil {
		return nil, ErrNoExchange
	}
	logger.Info("Sending bitcoin payout", "address", route.Address, "requested", req.Amount.String(), "net", net.String())
	started := time.Now()
	resp, err := s.exchange.SendMoney(ctx, provider.SendMoneyRequest{
		To:     route.Address,
		Amount: net,
		Notes:  s.settings.Notes,
	})
	s.metrics.ObserveProviderRequest(time.Since(started))
	if err != nil {
		return nil, newError(CodeProviderStatus, fmt.Errorf("send money: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, newError(CodeProviderStatus, &ProviderError{StatusCode: resp.StatusCode, Body: resp.Body})
	}
	if !s.exchange.Succeeded(resp.Body) {
		return nil, newError(CodeProviderFailure,
			fmt.Errorf("%w: %w", ErrProviderRejected, &ProviderError{StatusCode: resp.StatusCode, Body: resp.Body}))
	}
	logger.Info("Coinbase transaction succeeded")

	transfer, err := s.exchange.ParseTransfer(resp.Body)
	if err != nil {
		return nil, s.ledgerError(resp, err)
	}
	amount := transfer.Subtotal.Neg()
	fee := payoutdomain.FeeFromCents(transfer.ProviderFeeCents, transfer.BankFeeCents)
	entry, err := s.ledger.Record(ctx, ledger.Entry{
		Participant: req.Username,
		RouteID:     route.ID,
		Amount:      amount,
		Fee:         fee,
		Note:        fmt.Sprintf("Sent %s btc to %s", transfer.BTCAmount, route.Address),
	})
	if err != nil {
		return nil, s.ledgerError(resp, err)
	}

	res = &BitcoinPayoutResult{
		ExchangeID: entry.ExchangeID,
		Balance:    entry.Balance,
		Address:    route.Address,
		BTCAmount:  transfer.BTCAmount,
		NetSent:    net,
		Amount:     amount,
		Fee:        fee,
	}
	s.emit(ctx, payoutdomain.BitcoinSent{
		Username:   req.Username,
		Address:    route.Address,
		ExchangeID: res.ExchangeID,
		Requested:  req.Amount,
		NetSent:    net,
		Amount:     amount,
		Fee:        fee,
		BTC:        transfer.BTCAmount,
		Balance:    res.Balance,
	})
	return res, nil
}

func (s *Service) ledgerError(resp *provider.Response, err error) error {
	s.logger.Error("Provider confirmed transfer but ledger entry failed",
		"error", err, "body", string(resp.Body))
	return newError(CodeLedger, fmt.Errorf("record exchange: %w: %w", err,
		&ProviderError{StatusCode: resp.StatusCode, Body: resp.Body}))
}
