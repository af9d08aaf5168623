package coinbase

import (
	"context"
	"sync"
	"time"
)

// NonceSource yields the replay-protection nonce for the next request.
type NonceSource interface {
	Next(ctx context.Context) (int64, error)
}

// ClockNonce uses wall-clock microseconds since the epoch. Within one
// process each value is strictly greater than the last. Two processes sharing
// a key, or a clock stepped backwards between runs, can still produce a nonce
// the exchange rejects; use a shared source for that.
type ClockNonce struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewClockNonce returns a ClockNonce reading time.Now.
func NewClockNonce() *ClockNonce {
	return &ClockNonce{now: time.Now}
}

func (c *ClockNonce) Next(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	if now == nil {
		now = time.Now
	}
	n := now().UnixMicro()
	if n <= c.last {
		n = c.last + 1
	}
	c.last = n
	return n, nil
}
