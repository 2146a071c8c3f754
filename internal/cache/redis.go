package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/turfbooking/config"
	"github.com/Domenick1991/turfbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache keeps two kinds of keys: markers for dates whose slots are
// already materialised, and ids of tokens revoked before they expire.
type RedisCache struct {
	client       *redis.Client
	dayMarkerTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig) *RedisCache {
	return &RedisCache{
		client:       redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		dayMarkerTTL: cfg.DayMarkerTTL(),
	}
}

// NewRedisCacheWithClient wraps an existing client. A zero ttl keeps markers forever.
func NewRedisCacheWithClient(client *redis.Client, dayMarkerTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, dayMarkerTTL: dayMarkerTTL}
}

func (c *RedisCache) Client() *redis.Client {
	return c.client
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) IsDayGenerated(ctx context.Context, date time.Time) (bool, error) {
	n, err := c.client.Exists(ctx, dayKey(date)).Result()
	if err != nil {
		return false, fmt.Errorf("day marker check: %w", err)
	}
	return n > 0, nil
}

func (c *RedisCache) MarkDayGenerated(ctx context.Context, date time.Time) error {
	return c.client.Set(ctx, dayKey(date), "1", c.dayMarkerTTL).Err()
}

// RevokeToken remembers jti until the token would have expired anyway.
func (c *RedisCache) RevokeToken(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, revokedKey(jti), "1", ttl).Err()
}

func (c *RedisCache) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	_, err := c.client.Get(ctx, revokedKey(jti)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return true, nil
}

func dayKey(date time.Time) string {
	return "slots:day:" + date.Format(domain.DateLayout)
}

func revokedKey(jti string) string {
	return "auth:revoked:" + jti
}
