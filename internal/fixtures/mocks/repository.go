// Package mocks holds testify mocks of the repository, provider and event
// interfaces.
package mocks

import (
	"context"
	"testing"

	"github.com/amirasaad/payouts/pkg/domain"
	"github.com/amirasaad/payouts/pkg/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockUnitOfWork runs Do callbacks against itself, handing out its
// repository mocks. Set DoErr to fail the transaction before fn runs.
type MockUnitOfWork struct {
	Participants *MockParticipantRepository
	Routes       *MockRouteRepository
	Exchanges    *MockExchangeRepository
	DoErr        error
	DoCalls      int
}

// NewMockUnitOfWork returns a unit of work wired to fresh repository mocks.
func NewMockUnitOfWork(t *testing.T) *MockUnitOfWork {
	return &MockUnitOfWork{
		Participants: NewMockParticipantRepository(t),
		Routes:       NewMockRouteRepository(t),
		Exchanges:    NewMockExchangeRepository(t),
	}
}

func (u *MockUnitOfWork) Do(_ context.Context, fn func(uow repository.UnitOfWork) error) error {
	u.DoCalls++
	if u.DoErr != nil {
		return u.DoErr
	}
	return fn(u)
}

func (u *MockUnitOfWork) ParticipantRepository() (repository.ParticipantRepository, error) {
	return u.Participants, nil
}

func (u *MockUnitOfWork) RouteRepository() (repository.RouteRepository, error) {
	return u.Routes, nil
}

func (u *MockUnitOfWork) ExchangeRepository() (repository.ExchangeRepository, error) {
	return u.Exchanges, nil
}

type MockParticipantRepository struct{ mock.Mock }

func NewMockParticipantRepository(t *testing.T) *MockParticipantRepository {
	m := &MockParticipantRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockParticipantRepository) GetByUsername(ctx context.Context, username string) (*domain.Participant, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Participant), args.Error(1)
}

func (m *MockParticipantRepository) AdjustBalance(
	ctx context.Context,
	username string,
	delta decimal.Decimal,
) (decimal.Decimal, error) {
	args := m.Called(ctx, username, delta)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockRouteRepository struct{ mock.Mock }

func NewMockRouteRepository(t *testing.T) *MockRouteRepository {
	m := &MockRouteRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRouteRepository) Get(
	ctx context.Context,
	participantID int64,
	network domain.Network,
) (*domain.Route, error) {
	args := m.Called(ctx, participantID, network)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockRouteRepository) Upsert(ctx context.Context, route *domain.Route) error {
	return m.Called(ctx, route).Error(0)
}

type MockExchangeRepository struct{ mock.Mock }

func NewMockExchangeRepository(t *testing.T) *MockExchangeRepository {
	m := &MockExchangeRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockExchangeRepository) Create(ctx context.Context, exchange *domain.Exchange) error {
	return m.Called(ctx, exchange).Error(0)
}

var (
	_ repository.UnitOfWork            = (*MockUnitOfWork)(nil)
	_ repository.ParticipantRepository = (*MockParticipantRepository)(nil)
	_ repository.RouteRepository       = (*MockRouteRepository)(nil)
	_ repository.ExchangeRepository    = (*MockExchangeRepository)(nil)
)
