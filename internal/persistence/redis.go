package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/furniture-store/internal/cache"
	"github.com/spec-kit/furniture-store/internal/config"
)

const redisProbeTimeout = 2 * time.Second

// Redis holds the client backing the catalog cache.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis builds a client for cfg. An unreachable server is logged, not fatal: catalog
// reads fall through to storage until it comes back.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  redisProbeTimeout,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	probeCtx, cancel := context.WithTimeout(ctx, redisProbeTimeout)
	defer cancel()
	if err := client.Ping(probeCtx).Err(); err != nil {
		logger.Warn("redis unreachable; catalog cache degraded", zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	}
	return &Redis{client: client, ttl: cfg.CatalogTTL()}
}

// CatalogCache returns a cache store writing keys under keyPrefix with the configured TTL.
func (r *Redis) CatalogCache(keyPrefix string) *cache.RedisStore {
	return cache.NewRedisStore(r.client, keyPrefix, r.ttl)
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.client != nil {
		_ = r.client.Close()
	}
}

// Ping backs the readiness probe.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.client == nil {
		return errors.New("redis client not configured")
	}
	return r.client.Ping(ctx).Err()
}
