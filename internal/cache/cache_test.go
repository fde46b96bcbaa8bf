package cache

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/drivent/hotel-booking/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// unreachableClient points at a closed port so every command fails fast
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestCache_Key(t *testing.T) {
	c := New(nil, "hotels", time.Minute, testLogger())
	assert.Equal(t, "hotels:all", c.Key("all"))
	assert.Equal(t, "hotels:12:rooms", c.Key("12", "rooms"))

	bare := New(nil, "", time.Minute, testLogger())
	assert.Equal(t, "12:rooms", bare.Key("12", "rooms"))
}

func TestCache_Enabled(t *testing.T) {
	var nilCache *Cache
	assert.False(t, nilCache.Enabled())
	assert.False(t, New(nil, "hotels", time.Minute, testLogger()).Enabled())

	client := unreachableClient()
	defer client.Close()
	assert.False(t, New(client, "hotels", 0, testLogger()).Enabled())
	assert.True(t, New(client, "hotels", time.Minute, testLogger()).Enabled())
}

func TestGetOrLoad_Disabled(t *testing.T) {
	c := New(nil, "hotels", time.Minute, testLogger())
	calls := 0

	for i := 0; i < 2; i++ {
		got, err := GetOrLoad(context.Background(), c, c.Key("all"), func(ctx context.Context) ([]string, error) {
			calls++
			return []string{"a"}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, got)
	}
	assert.Equal(t, 2, calls)
}

func TestGetOrLoad_RedisDownFallsThrough(t *testing.T) {
	client := unreachableClient()
	defer client.Close()
	c := New(client, "hotels", time.Minute, testLogger())

	got, err := GetOrLoad(context.Background(), c, c.Key("all"), func(ctx context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestGetOrLoad_LoadErrorReturned(t *testing.T) {
	c := New(nil, "hotels", time.Minute, testLogger())
	loadErr := errors.New("store down")

	_, err := GetOrLoad(context.Background(), c, "k", func(ctx context.Context) (int, error) {
		return 0, loadErr
	})
	assert.ErrorIs(t, err, loadErr)
}

func TestNewRedisClient_Disabled(t *testing.T) {
	client, err := NewRedisClient(context.Background(), config.CacheConfig{Enabled: false, Addr: "localhost:6379"})
	assert.NoError(t, err)
	assert.Nil(t, client)

	client, err = NewRedisClient(context.Background(), config.CacheConfig{Enabled: true})
	assert.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	client, err := NewRedisClient(context.Background(), config.CacheConfig{Enabled: true, Addr: "127.0.0.1:1"})
	assert.Error(t, err)
	assert.Nil(t, client)
}
