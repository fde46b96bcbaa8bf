// Package cache provides a read-through JSON cache in Redis for listing
// queries. A Cache with no client passes every call straight to the loader.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Cache wraps a Redis client with a key prefix and entry TTL
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	logger logrus.FieldLogger
}

// New creates a cache. client may be nil.
func New(client *redis.Client, prefix string, ttl time.Duration, logger logrus.FieldLogger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		prefix: prefix,
		logger: logger,
	}
}

// Enabled reports whether reads and writes reach Redis
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// Key joins parts under the cache prefix, e.g. hotels:12:rooms
func (c *Cache) Key(parts ...string) string {
	if c == nil || c.prefix == "" {
		return strings.Join(parts, ":")
	}
	return c.prefix + ":" + strings.Join(parts, ":")
}

// GetOrLoad returns the cached value for key, or calls load and stores its
// result. Redis failures and undecodable entries fall through to load; load
// errors are returned as is and never cached.
func GetOrLoad[T any](ctx context.Context, c *Cache, key string, load func(ctx context.Context) (T, error)) (T, error) {
	if !c.Enabled() {
		return load(ctx)
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		c.logger.WithField("key", key).Warn("Discarding undecodable cache entry")
	case !errors.Is(err, redis.Nil):
		c.logger.WithError(err).WithField("key", key).Warn("Cache read failed, loading from store")
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Failed to encode cache entry")
		return value, nil
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Cache write failed")
	}

	return value, nil
}
