package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/drivent/hotel-booking/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis and pings it with a short timeout.
// It returns (nil, nil) when caching is disabled or no address is configured.
func NewRedisClient(ctx context.Context, cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled || cfg.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}

	return client, nil
}
