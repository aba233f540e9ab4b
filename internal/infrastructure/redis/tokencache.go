package redisinfra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/medilink-notifier/internal/config"
	"github.com/medilink-notifier/internal/domain"
	"github.com/medilink-notifier/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const tokenKeyPrefix = "fcm_token:"

// NewClient connects to cfg.RedisAddr and pings it.
func NewClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}
	return rdb, nil
}

// TokenCache caches push tokens resolved from the directory, keyed by user id.
type TokenCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTokenCache(client *redis.Client, ttl time.Duration) *TokenCache {
	return &TokenCache{client: client, ttl: ttl}
}

// Get returns the cached token, or domain.ErrNotFound on a miss.
func (c *TokenCache) Get(ctx context.Context, userID string) (string, error) {
	key := tokenKeyPrefix + userID
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("token cache miss for %s: %w", userID, domain.ErrNotFound)
		}
		return "", err
	}
	logger.Log.Debugw("token cache hit", "key", key)
	return val, nil
}

func (c *TokenCache) Set(ctx context.Context, userID, token string) error {
	return c.client.Set(ctx, tokenKeyPrefix+userID, token, c.ttl).Err()
}
