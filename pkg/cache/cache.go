// Package cache provides the key/value store behind sessions and cached
// queries. Two drivers exist: Redis (production) and an in-process memory
// store (local development and tests).
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/ventas/config"
	"github.com/shashiranjanraj/ventas/pkg/metrics"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Store is implemented by every cache driver. Values are JSON encoded.
type Store interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Driver() string
}

// Connect builds the store selected by CACHE_DRIVER. When Redis is
// configured but unreachable the error is returned so the caller can decide
// whether to fall back to memory.
func Connect(ctx context.Context) (Store, error) {
	if config.CacheDriver() == "memory" {
		return NewMemory(), nil
	}

	store, err := NewRedis(ctx, config.RedisAddr(), config.RedisPassword())
	if err != nil {
		return nil, fmt.Errorf("cache: connect: %w", err)
	}
	return store, nil
}

// Remember returns the cached value under key, or computes it with fn and
// caches it for ttl. Store failures never fail the call; fn's errors do.
func Remember[T any](ctx context.Context, s Store, key string, ttl time.Duration, fn func() (T, error)) (T, error) {
	var cached T
	if err := s.Get(ctx, key, &cached); err == nil {
		metrics.CacheHits.WithLabelValues(s.Driver()).Inc()
		return cached, nil
	}
	metrics.CacheMisses.WithLabelValues(s.Driver()).Inc()

	fresh, err := fn()
	if err != nil {
		return fresh, err
	}

	_ = s.Set(ctx, key, fresh, ttl)
	return fresh, nil
}

// Forget is an alias for Del (Laravel-style).
func Forget(ctx context.Context, s Store, key string) error {
	return s.Del(ctx, key)
}
