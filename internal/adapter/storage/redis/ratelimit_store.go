package redis

import (
	"context"
	"fmt"
	"time"

	"nft-royalty-vault/internal/core/ports"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RateLimitStore implements ports.RateLimitStore with a fixed-window counter
// in Redis. When Redis is unreachable it answers from fallback, so a Redis
// outage degrades limits to per-instance instead of rejecting traffic.
type RateLimitStore struct {
	client   goredis.UniversalClient
	fallback ports.RateLimitStore
	clock    clockwork.Clock
	log      zerolog.Logger
	prefix   string
}

// NewRateLimitStore creates a Redis-backed rate limit store. fallback may be nil.
func NewRateLimitStore(client goredis.UniversalClient, fallback ports.RateLimitStore, clock clockwork.Clock, log zerolog.Logger) *RateLimitStore {
	return &RateLimitStore{
		client:   client,
		fallback: fallback,
		clock:    clock,
		log:      log,
		prefix:   namespace("ratelimit"),
	}
}

// Allow counts one request against key's current window.
func (s *RateLimitStore) Allow(ctx context.Context, key string, limit int64, window time.Duration) (*ports.RateLimitResult, error) {
	windowSecs := int64(window / time.Second)
	if windowSecs <= 0 {
		return nil, fmt.Errorf("rate limit window must be at least one second, got %s", window)
	}
	windowID := s.clock.Now().Unix() / windowSecs
	redisKey := fmt.Sprintf("%s%s:%d", s.prefix, key, windowID)

	var incr *goredis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, window+time.Second)
		return nil
	})
	if err != nil {
		if s.fallback == nil {
			return nil, fmt.Errorf("redis rate limit incr: %w", err)
		}
		s.log.Warn().Err(err).Str("key", key).Msg("Redis rate limit unavailable, using local limiter")
		return s.fallback.Allow(ctx, key, limit, window)
	}

	count := incr.Val()
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return &ports.RateLimitResult{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   (windowID + 1) * windowSecs,
	}, nil
}
