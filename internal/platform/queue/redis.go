package queue

import (
	"context"
	"fmt"

	"portfolio_pro/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis opens and verifies the Redis client used by the
// forgot-password rate limiter.
func ConnectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("could not connect to Redis: %w", err)
	}
	return rdb, nil
}
