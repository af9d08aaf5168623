package payout_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/amirasaad/payouts/internal/fixtures/mocks"
	"github.com/amirasaad/payouts/pkg/config"
	"github.com/amirasaad/payouts/pkg/domain"
	"github.com/amirasaad/payouts/pkg/provider"
	payoutsvc "github.com/amirasaad/payouts/pkg/service/payout"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const (
	apiKey      = "abcdefgh12345678"
	keyFragment = "abcdefgh"
	btcAddress  = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

type fakeMetrics struct {
	outcomes []string
	observed int
}

func (f *fakeMetrics) TaskFinished(task, outcome string) {
	f.outcomes = append(f.outcomes, task+":"+outcome)
}

func (f *fakeMetrics) ObserveProviderRequest(time.Duration) { f.observed++ }

type fixture struct {
	uow       *mocks.MockUnitOfWork
	exchange  *mocks.MockBitcoinExchange
	publisher *mocks.MockPublisher
	metrics   *fakeMetrics
	svc       *payoutsvc.Service
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		uow:       mocks.NewMockUnitOfWork(t),
		exchange:  mocks.NewMockBitcoinExchange(t),
		publisher: mocks.NewMockPublisher(t),
		metrics:   &fakeMetrics{},
	}
	f.svc = payoutsvc.NewService(config.Deps{
		Uow:       f.uow,
		Exchange:  f.exchange,
		Publisher: f.publisher,
		Logger:    testLogger,
	}, payoutsvc.WithMetrics(f.metrics))
	return f
}

func alice(balance string) *domain.Participant {
	key := apiKey
	return &domain.Participant{
		ID:       7,
		Username: "alice",
		Balance:  decimal.RequireFromString(balance),
		APIKey:   &key,
	}
}

func decimalEq(s string) any {
	want := decimal.RequireFromString(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, payoutsvc.CodeOK, payoutsvc.CodeOf(nil))
	assert.Equal(t, payoutsvc.CodeInvalidInput, payoutsvc.CodeOf(errors.New("plain")))
	wrapped := &payoutsvc.Error{Code: payoutsvc.CodeProviderStatus, Err: errors.New("x")}
	assert.Equal(t, payoutsvc.CodeProviderStatus, payoutsvc.CodeOf(wrapped))
}

func TestNewService_SettingsFromConfig(t *testing.T) {
	f := newFixture(t)
	svc := payoutsvc.NewService(config.Deps{
		Uow:    f.uow,
		Logger: testLogger,
		Config: &config.App{Payout: &config.Payout{MinimumBitcoin: decimal.NewFromInt(5)}},
	})
	_, err := svc.BitcoinPayout(context.Background(), payoutsvc.BitcoinPayoutRequest{
		Username: "alice",
		Amount:   decimal.NewFromInt(4),
	})
	assert.ErrorIs(t, err, payoutsvc.ErrBelowMinimum)
}

func TestDefaultSettings(t *testing.T) {
	st := payoutsvc.DefaultSettings()
	assert.True(t, st.MinimumBitcoin.Equal(decimal.NewFromInt(1)))
	assert.True(t, st.PayPalFeeCap.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, "Gratipay Bitcoin Payout", st.Notes)
}

func okResponse() *provider.Response {
	return &provider.Response{StatusCode: http.StatusOK, Body: []byte(`{"success":true}`)}
}

func transfer() *provider.Transfer {
	return &provider.Transfer{
		ProviderFeeCents: 99,
		BankFeeCents:     15,
		Subtotal:         decimal.RequireFromString("98.86"),
		BTCAmount:        "0.19860000",
	}
}

func sentTo(address, amount string) any {
	want := decimal.RequireFromString(amount)
	return mock.MatchedBy(func(r provider.SendMoneyRequest) bool {
		return r.To == address && r.Amount.Equal(want) && r.Notes == "Gratipay Bitcoin Payout"
	})
}

func configDeps(f *fixture, exchange provider.BitcoinExchange) config.Deps {
	return config.Deps{
		Uow:       f.uow,
		Exchange:  exchange,
		Publisher: f.publisher,
		Logger:    testLogger,
	}
}
