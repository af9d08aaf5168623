package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// advanceNonce raises the stored floor to max(floor+1, ARGV[1]) and returns it.
var advanceNonce = redis.NewScript(`
local floor = tonumber(redis.call('GET', KEYS[1]) or '0')
local n = tonumber(ARGV[1])
if n <= floor then
  n = floor + 1
end
redis.call('SET', KEYS[1], string.format('%d', n))
return n
`)

// RedisNonce hands out exchange nonces that increase across every process
// sharing one Redis and one API key.
type RedisNonce struct {
	client redis.Scripter
	key    string
	now    func() time.Time
	logger *slog.Logger
}

// NewRedisNonce keys the floor by prefix and a digest of apiKey, so the key
// itself never lands in Redis.
func NewRedisNonce(client redis.Scripter, prefix, apiKey string, logger *slog.Logger) *RedisNonce {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisNonce{
		client: client,
		key:    nonceKey(prefix, apiKey),
		now:    time.Now,
		logger: logger,
	}
}

// NewRedisClient parses a redis:// URL into a client.
func NewRedisClient(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	return redis.NewClient(opt), nil
}

func (r *RedisNonce) Next(ctx context.Context) (int64, error) {
	candidate := r.now().UnixMicro()
	n, err := advanceNonce.Run(ctx, r.client, []string{r.key}, candidate).Int64()
	if err != nil {
		r.logger.Error("Redis nonce error", "key", r.key, "error", err)
		return 0, fmt.Errorf("redis nonce: %w", err)
	}
	if n != candidate {
		r.logger.Debug("Redis nonce bumped past clock", "key", r.key, "clock", candidate, "nonce", n)
	}
	return n, nil
}

func nonceKey(prefix, apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return prefix + hex.EncodeToString(sum[:8])
}
