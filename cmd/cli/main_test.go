package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"testing"

	"github.com/amirasaad/payouts/infra/initializer"
	"github.com/amirasaad/payouts/internal/fixtures/mocks"
	"github.com/amirasaad/payouts/pkg/config"
	"github.com/amirasaad/payouts/pkg/domain"
	"github.com/amirasaad/payouts/pkg/provider"
	"github.com/amirasaad/payouts/pkg/service/payout"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const btcAddress = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	color.NoColor = true
	os.Exit(m.Run())
}

type CLITestSuite struct {
	suite.Suite
	stdout    bytes.Buffer
	stderr    bytes.Buffer
	uow       *mocks.MockUnitOfWork
	setupRuns int
	cleanups  int
	cli       *cli
}

func TestCLITestSuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (s *CLITestSuite) SetupTest() {
	s.stdout.Reset()
	s.stderr.Reset()
	s.setupRuns, s.cleanups = 0, 0
	s.uow = mocks.NewMockUnitOfWork(s.T())
	s.cli = &cli{stdout: &s.stdout, stderr: &s.stderr, setup: s.initializerSetup}
}

// initializerSetup wires the service the way the binary does, with the
// database replaced by the mock unit of work and no exchange credentials.
func (s *CLITestSuite) initializerSetup(_ context.Context, _ string) (taskRunner, func(), error) {
	s.setupRuns++
	cfg := &config.App{
		Env:      "test",
		Log:      &config.Log{Level: 8, Format: "text"},
		DB:       &config.DB{},
		Coinbase: &config.Coinbase{},
		Payout:   &config.Payout{},
		Remote:   &config.Remote{},
		Redis:    &config.Redis{},
		Kafka:    &config.Kafka{},
		Metrics:  &config.Metrics{},
	}
	rt, err := initializer.InitializeDependencies(cfg, initializer.Options{Uow: s.uow})
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		s.cleanups++
		_ = rt.Close()
	}
	return payout.NewService(rt.Deps, payout.WithMetrics(rt.Metrics)), cleanup, nil
}

// withExchange replaces the setup with one that talks to exchange.
func (s *CLITestSuite) withExchange(exchange provider.BitcoinExchange) {
	s.cli.setup = func(context.Context, string) (taskRunner, func(), error) {
		s.setupRuns++
		svc := payout.NewService(config.Deps{
			Uow:       s.uow,
			Exchange:  exchange,
			Publisher: mocks.NewMockPublisher(s.T()),
			Logger:    slog.Default(),
		})
		return svc, func() { s.cleanups++ }, nil
	}
}

func (s *CLITestSuite) alice(balance string) {
	key := "abcdefgh12345678"
	s.uow.Participants.On("GetByUsername", mock.Anything, "alice").Return(&domain.Participant{
		ID:       7,
		Username: "alice",
		Balance:  decimal.RequireFromString(balance),
		APIKey:   &key,
	}, nil)
}

func (s *CLITestSuite) run(args ...string) payout.Code {
	return s.cli.run(context.Background(), args)
}

func (s *CLITestSuite) TestNoArguments() {
	s.Equal(payout.CodeInvalidInput, s.run())
	s.Contains(s.stderr.String(), "Commands:")
	s.Contains(s.stderr.String(), "set-payout-address")
	s.Contains(s.stderr.String(), "bitcoin-payout")
	s.Zero(s.setupRuns)
}

func (s *CLITestSuite) TestUnknownCommand() {
	s.Equal(payout.CodeInvalidInput, s.run("refund"))
	s.Contains(s.stderr.String(), `unknown command "refund"`)
	s.Contains(s.stderr.String(), "Commands:")
}

func (s *CLITestSuite) TestSetPayoutAddress_MissingArgsPrintsUsage() {
	s.Equal(payout.CodeInvalidInput, s.run("set-payout-address", "--username=alice"))

	usage := s.stderr.String()
	s.Contains(usage, setPayoutAddressDoc)
	for _, name := range []string{"--username", "--email", "--network", "--api-key-fragment", "--overwrite"} {
		s.Contains(usage, name)
	}
	s.Zero(s.setupRuns)
}

func (s *CLITestSuite) TestBitcoinPayout_MissingArgsPrintsUsage() {
	s.Equal(payout.CodeInvalidInput, s.run("bitcoin-payout", "--amount=10"))
	s.Contains(s.stderr.String(), bitcoinPayoutDoc)
	s.Contains(s.stderr.String(), "--amount")
	s.Zero(s.setupRuns)
}

func (s *CLITestSuite) TestInvalidInputsExitBeforeSetup() {
	cases := map[string][]string{
		"too many decimals": {"bitcoin-payout", "--username=alice", "--amount=1.005"},
		"not a number":      {"bitcoin-payout", "--username=alice", "--amount=ten"},
		"bad email":         {"set-payout-address", "--username=alice", "--email=alice"},
		"bad btc address":   {"set-payout-address", "--username=alice", "--network=bitcoin", "--address=0xdeadbeef"},
		"unknown network":   {"set-payout-address", "--username=alice", "--network=iban", "--address=x"},
		"unknown flag":      {"bitcoin-payout", "--user=alice"},
	}
	for name, args := range cases {
		s.Run(name, func() {
			s.Equal(payout.CodeInvalidInput, s.run(args...))
		})
	}
	s.Zero(s.setupRuns)
}

func (s *CLITestSuite) TestHelpExitsZero() {
	s.Equal(payout.CodeOK, s.run("bitcoin-payout", "-h"))
	s.Contains(s.stderr.String(), bitcoinPayoutDoc)
}

func (s *CLITestSuite) TestBitcoinPayout_NoBitcoinRoute() {
	s.alice("200")
	s.uow.Routes.On("Get", mock.Anything, int64(7), domain.NetworkBitcoin).Return(nil, domain.ErrNotFound)

	code := s.run("bitcoin-payout", "--username=alice", "--amount=100", "--api-key-fragment=abcdefgh")

	s.Equal(payout.CodeRoute, code)
	s.Contains(s.stdout.String(), "has not linked a bitcoin address")
	s.Equal(1, s.cleanups)
}

func (s *CLITestSuite) TestBitcoinPayout_UnknownParticipant() {
	s.uow.Participants.On("GetByUsername", mock.Anything, "bob").Return(nil, domain.ErrNotFound)

	s.Equal(payout.CodeUnknownParticipant, s.run("bitcoin-payout", "--username=bob", "--amount=10"))
}

func (s *CLITestSuite) TestSetPayoutAddress_AlreadySet() {
	s.alice("0")
	s.uow.Routes.On("Get", mock.Anything, int64(7), domain.NetworkPayPal).
		Return(&domain.Route{ID: 3, ParticipantID: 7, Network: domain.NetworkPayPal, Address: "old@example.com"}, nil)

	code := s.run("set-payout-address", "--username=alice", "--email=alice@example.com")

	s.Equal(payout.CodeRoute, code)
	s.Contains(s.stdout.String(), "Current paypal address: old@example.com")
}

func (s *CLITestSuite) TestSetPayoutAddress_Bitcoin() {
	s.alice("0")
	s.uow.Routes.On("Get", mock.Anything, int64(7), domain.NetworkBitcoin).Return(nil, domain.ErrNotFound)
	s.uow.Routes.On("Upsert", mock.Anything, mock.MatchedBy(func(r *domain.Route) bool {
		return r.Address == btcAddress && r.FeeCap == nil
	})).Return(nil)

	code := s.run("set-payout-address", "--username=alice", "--network=bitcoin",
		"--address="+btcAddress, "--api-key-fragment=abcdefgh")

	s.Equal(payout.CodeOK, code)
	s.Contains(s.stdout.String(), "Set alice bitcoin address to "+btcAddress)
}

func (s *CLITestSuite) TestKeyFragmentMismatchIsReportedAsAssertion() {
	s.alice("0")
	s.uow.Routes.On("Get", mock.Anything, int64(7), domain.NetworkPayPal).Return(nil, domain.ErrNotFound)

	code := s.run("set-payout-address", "--username=alice", "--email=alice@example.com", "--api-key-fragment=zzzzzzzz")

	s.Equal(payout.CodeInvalidInput, code)
	s.Contains(s.stdout.String(), "assertion failed")
	s.Contains(s.stdout.String(), `"zzzzzzzz"`)
	s.Equal(1, s.cleanups)
	s.uow.Routes.AssertNotCalled(s.T(), "Upsert", mock.Anything, mock.Anything)
}

func (s *CLITestSuite) TestBitcoinPayout_ProviderStatusPrintsBody() {
	exchange := mocks.NewMockBitcoinExchange(s.T())
	s.withExchange(exchange)
	s.alice("200")
	s.uow.Routes.On("Get", mock.Anything, int64(7), domain.NetworkBitcoin).
		Return(&domain.Route{ID: 3, ParticipantID: 7, Network: domain.NetworkBitcoin, Address: btcAddress}, nil)
	body := `{"error":"upstream unavailable"}`
	exchange.On("SendMoney", mock.Anything, mock.Anything).
		Return(&provider.Response{StatusCode: http.StatusBadGateway, Body: []byte(body)}, nil)

	code := s.run("bitcoin-payout", "--username=alice", "--amount=100", "--api-key-fragment=abcdefgh")

	s.Equal(payout.CodeProviderStatus, code)
	s.Contains(s.stdout.String(), body)
	s.Equal(1, s.cleanups)
}

func (s *CLITestSuite) TestBitcoinPayout_InsufficientBalance() {
	s.alice("50")
	s.uow.Routes.On("Get", mock.Anything, int64(7), domain.NetworkBitcoin).
		Return(&domain.Route{ID: 3, ParticipantID: 7, Network: domain.NetworkBitcoin, Address: btcAddress}, nil)

	s.Equal(payout.CodeInsufficientBalance, s.run("bitcoin-payout", "--username=alice", "--amount=100"))
}
