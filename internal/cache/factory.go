// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"fmt"
	"log/slog"
	"time"
)

// Options selects and configures the cache backend.
type Options struct {
	// RedisURL enables the Redis backend when non-empty.
	RedisURL string

	// Prefix namespaces keys when several apps share one Redis.
	Prefix string

	// DefaultTTL applies when a Set passes ttl 0.
	DefaultTTL time.Duration

	// MaxSize bounds the in-memory backend (0 = unlimited). Ignored for Redis.
	MaxSize int
}

// New builds a Cache from runtime configuration: Redis when a URL is
// configured, in-memory otherwise.
func New(opts Options, log *slog.Logger) (Cache, error) {
	if opts.RedisURL != "" {
		c, err := NewRedisCache(RedisCacheOptions{
			URL:        opts.RedisURL,
			Prefix:     opts.Prefix,
			DefaultTTL: opts.DefaultTTL,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		log.Info("cache backend ready", "backend", "redis", "prefix", opts.Prefix)
		return c, nil
	}

	c := NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      opts.DefaultTTL,
		MaxSize:         opts.MaxSize,
		CleanupInterval: time.Minute,
	})
	log.Info("cache backend ready", "backend", "memory", "max_size", opts.MaxSize)
	return c, nil
}
