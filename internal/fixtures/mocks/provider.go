package mocks

import (
	"context"
	"testing"

	"github.com/amirasaad/payouts/pkg/eventbus"
	"github.com/amirasaad/payouts/pkg/provider"
	"github.com/stretchr/testify/mock"
)

type MockBitcoinExchange struct{ mock.Mock }

func NewMockBitcoinExchange(t *testing.T) *MockBitcoinExchange {
	m := &MockBitcoinExchange{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBitcoinExchange) SendMoney(ctx context.Context, req provider.SendMoneyRequest) (*provider.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Response), args.Error(1)
}

func (m *MockBitcoinExchange) Succeeded(body []byte) bool {
	return m.Called(body).Bool(0)
}

func (m *MockBitcoinExchange) ParseTransfer(body []byte) (*provider.Transfer, error) {
	args := m.Called(body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Transfer), args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func NewMockPublisher(t *testing.T) *MockPublisher {
	m := &MockPublisher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPublisher) Emit(ctx context.Context, event eventbus.Event) error {
	return m.Called(ctx, event).Error(0)
}

var (
	_ provider.BitcoinExchange = (*MockBitcoinExchange)(nil)
	_ eventbus.Publisher       = (*MockPublisher)(nil)
)
