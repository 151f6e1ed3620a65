// Package rdx is a thin Redis read-cache for the public catalog endpoints.
package rdx

import (
	"context"
	"log/slog"
	"time"

	"github.com/Atiqul-Imon/jhatika-safar-sub000/config"

	"github.com/redis/go-redis/v9"
)

const tourKeyPrefix = "tours:"

type Cache struct {
	conn   *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func New(cfg config.Config, logger *slog.Logger) *Cache {
	conn := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	return &Cache{conn: conn, ttl: cfg.CatalogTTL, logger: logger}
}

// Get returns the cached body for key. A cache miss and a Redis failure
// look the same to the caller; reads always fall through to Mongo.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	val, err := c.conn.Get(ctx, tourKeyPrefix+key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *Cache) Set(ctx context.Context, key, value string) {
	if c == nil {
		return
	}
	if err := c.conn.Set(ctx, tourKeyPrefix+key, value, c.ttl).Err(); err != nil {
		c.logger.Warn("redis set failed", "key", key, "error", err)
	}
}

// InvalidateTours drops every cached catalog response. Called on any tour
// create/update/delete so stale listings never outlive a write by more
// than the in-flight requests.
func (c *Cache) InvalidateTours(ctx context.Context) {
	if c == nil {
		return
	}
	keys, err := c.conn.Keys(ctx, tourKeyPrefix+"*").Result()
	if err != nil {
		c.logger.Warn("redis scan failed", "error", err)
		return
	}
	if len(keys) > 0 {
		c.conn.Del(ctx, keys...)
	}
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.conn.Close()
}
