package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/vasanta-estates/listings-api/internal/config"
)

// NewRedisClient connects to Redis for the listing result cache and
// verifies the connection with a ping. The cache is optional: callers
// should only reach here when a Redis address is configured.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
