package coinbase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/amirasaad/payouts/pkg/provider"
)

// DefaultBaseURL is the v1 API root.
const DefaultBaseURL = "https://api.coinbase.com/v1"

const sendMoneyPath = "/transactions/send_money"

// ErrMissingCredentials is returned before any request is made without a key pair.
var ErrMissingCredentials = errors.New("coinbase: api key and secret are required")

// Client issues signed requests. It never retries and sets no timeout of its
// own; the caller's context bounds each call.
type Client struct {
	baseURL    string
	creds      Credentials
	nonce      NonceSource
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithNonceSource replaces the in-process clock nonce.
func WithNonceSource(n NonceSource) Option {
	return func(c *Client) { c.nonce = n }
}

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// New creates a client signing with creds.
func New(creds Credentials, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL:    DefaultBaseURL,
		creds:      creds,
		nonce:      NewClockNonce(),
		httpClient: http.DefaultClient,
		logger:     logger.With("provider", "coinbase"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do signs and sends one request: POST with a JSON body when body is
// non-empty, GET otherwise.
func (c *Client) Do(ctx context.Context, url string, body []byte) (*provider.Response, error) {
	if !c.creds.Valid() {
		return nil, ErrMissingCredentials
	}
	nonce, err := c.nonce.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("coinbase: nonce: %w", err)
	}

	method := http.MethodGet
	var reader io.Reader
	if len(body) > 0 {
		method = http.MethodPost
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("coinbase: failed to create request: %w", err)
	}
	// Direct map assignment keeps the underscore names uncanonicalized.
	req.Header["ACCESS_KEY"] = []string{c.creds.Key}
	req.Header["ACCESS_SIGNATURE"] = []string{Sign(c.creds.Secret, nonce, url, body)}
	req.Header["ACCESS_NONCE"] = []string{strconv.FormatInt(nonce, 10)}
	req.Header.Set("Accept", "application/json")
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coinbase: failed to make request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("coinbase: failed to read response: %w", err)
	}
	c.logger.Debug("Coinbase response", "method", method, "url", url, "status", resp.StatusCode)
	return &provider.Response{StatusCode: resp.StatusCode, Body: raw}, nil
}

// SendMoney posts a send_money transaction paid in USD with instant buy.
func (c *Client) SendMoney(ctx context.Context, p provider.SendMoneyRequest) (*provider.Response, error) {
	body, err := sendMoneyBody(p)
	if err != nil {
		return nil, fmt.Errorf("coinbase: encode send_money: %w", err)
	}
	return c.Do(ctx, c.baseURL+sendMoneyPath, body)
}

// Succeeded implements provider.BitcoinExchange.
func (c *Client) Succeeded(body []byte) bool { return Succeeded(body) }

// ParseTransfer implements provider.BitcoinExchange.
func (c *Client) ParseTransfer(body []byte) (*provider.Transfer, error) { return ParseTransfer(body) }

var _ provider.BitcoinExchange = (*Client)(nil)
