package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marshmallow-code/dashboard/internal/metrics"
)

const connectTimeout = 5 * time.Second

// Redis is the production Store, shared by all dashboard replicas so a
// warehouse fetch on one instance warms them all.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to the instance named by a redis:// URL and verifies the
// connection before returning.
func NewRedis(ctx context.Context, url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	slog.Info("[Cache] Connected to redis", "addr", opts.Addr, "db", opts.DB)
	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheRequests.WithLabelValues("redis", "miss").Inc()
		return nil, ErrMiss
	}
	if err != nil {
		metrics.CacheRequests.WithLabelValues("redis", "error").Inc()
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	metrics.CacheRequests.WithLabelValues("redis", "hit").Inc()
	return raw, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
