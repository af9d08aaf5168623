package payout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amirasaad/payouts/pkg/domain"
	payoutdomain "github.com/amirasaad/payouts/pkg/domain/payout"
	"github.com/amirasaad/payouts/pkg/repository"
)

// SetAddressRequest links Address as the participant's route on Network.
type SetAddressRequest struct {
	Username string
	// Network defaults to PayPal.
	Network     domain.Network
	Address     string
	KeyFragment string
	Overwrite   bool
}

// SetAddressResult describes the stored route.
type SetAddressResult struct {
	Route *domain.Route
	// Previous is the address that was replaced, empty for a new route.
	Previous string
}

// SetPayoutAddress validates the address, then inserts the route or, with
// Overwrite, replaces the one on file. A key fragment mismatch panics with
// KeyFragmentMismatch before anything is written.
func (s *Service) SetPayoutAddress(ctx context.Context, req SetAddressRequest) (res *SetAddressResult, err error) {
	defer s.finish(TaskSetPayoutAddress, &err)

	req.Username = strings.TrimSpace(req.Username)
	req.Address = strings.TrimSpace(req.Address)
	if req.Network == "" {
		req.Network = domain.NetworkPayPal
	}
	if req.Username == "" || req.Address == "" {
		return nil, newError(CodeInvalidInput, fmt.Errorf("%w: username and address are required", domain.ErrValidation))
	}
	if err := domain.ValidateAddress(req.Network, req.Address); err != nil {
		return nil, newError(CodeInvalidInput, err)
	}

	logger := s.logger.With("task", TaskSetPayoutAddress, "username", req.Username, "network", req.Network)
	route := &domain.Route{
		Network: req.Network,
		Address: req.Address,
	}
	if req.Network == domain.NetworkPayPal {
		// MassPay caps its fee at 20 USD outside the U.S.
		feeCap := s.settings.PayPalFeeCap
		route.FeeCap = &feeCap
	}

	var previous string
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		participant, err := s.loadParticipant(ctx, uow, req.Username)
		if err != nil {
			return err
		}
		route.ParticipantID = participant.ID

		routes, err := uow.RouteRepository()
		if err != nil {
			return err
		}
		existing, err := routes.Get(ctx, participant.ID, req.Network)
		switch {
		case err == nil:
			logger.Info("Payout address already set", "address", existing.Address)
			if !req.Overwrite {
				return newError(CodeRoute, &RouteExistsError{Network: req.Network, Address: existing.Address})
			}
			previous = existing.Address
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}

		checkKeyFragment(participant, req.KeyFragment)

		logger.Info("Setting payout address", "address", req.Address)
		return routes.Upsert(ctx, route)
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, payoutdomain.AddressSet{
		Username:    req.Username,
		Network:     req.Network.String(),
		Address:     route.Address,
		RouteID:     route.ID,
		Overwritten: previous != "",
	})
	return &SetAddressResult{Route: route, Previous: previous}, nil
}
