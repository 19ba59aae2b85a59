package redis

import (
	"context"
	"fmt"

	"nft-royalty-vault/config"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// keyPrefix namespaces every key this service writes.
const keyPrefix = "nrv:"

// namespace returns the key prefix of one store kind, e.g. "nrv:nonce:".
func namespace(kind string) string {
	return keyPrefix + kind + ":"
}

// NewClient connects to the Redis instance backing replay protection,
// deposit idempotency and rate limits. Callers fall back to in-process
// stores when it returns an error.
func NewClient(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	log.Info().
		Str("addr", cfg.Addr()).
		Int("db", cfg.DB).
		Str("namespace", keyPrefix).
		Msg("redis ready for nonce, idempotency and rate limit stores")

	return client, nil
}
