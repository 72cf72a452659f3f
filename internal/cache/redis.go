// Package cache provides Redis caching for expensive feed and tag
// queries. A missing or unreachable Redis is tolerated: the cache
// disables itself and callers fall through to the store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"murmur/internal/observability"

	"github.com/redis/go-redis/v9"
)

type metricsHook struct{}

func (h metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			observability.CacheErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (h metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			observability.CacheErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// Cache wraps a Redis client. A nil client means caching is disabled.
type Cache struct {
	client *redis.Client
}

// New connects to Redis at addr, which may be a host:port or a
// redis:// URL. Connection failure returns a disabled cache, not an
// error.
func New(addr string) *Cache {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			observability.GlobalLogger.Warn("invalid redis url, continuing without cache", "error", err)
			return &Cache{}
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)
	client.AddHook(metricsHook{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		observability.GlobalLogger.Warn("redis unreachable, continuing without cache", "error", err)
		return &Cache{}
	}
	observability.GlobalLogger.Info("redis connected")
	return &Cache{client: client}
}

// NewWithClient wraps an existing client, used by tests.
func NewWithClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Enabled reports whether a Redis connection is available.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// GetJSON reads key and unmarshals it into dest. The boolean reports a
// hit; cache errors are swallowed and counted, never surfaced.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if !c.Enabled() {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		observability.CacheErrors.WithLabelValues("unmarshal").Inc()
		return false
	}
	return true
}

// SetJSON marshals value into key with the given TTL. Failures are
// counted and otherwise ignored.
func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if !c.Enabled() {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		observability.CacheErrors.WithLabelValues("marshal").Inc()
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return
	}
}
