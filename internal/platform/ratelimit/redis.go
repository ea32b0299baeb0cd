// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vantran-dev/loft/internal/platform/constants"
)

// RedisStore is a fixed-window counter [Store] backed by Redis.
//
// Each key gets an INCR counter that expires after the window; a request is
// allowed while the counter stays within maxPerWindow. The window boundary is
// coarse (classic fixed-window tradeoff) which is acceptable for abuse
// protection on public write endpoints.
type RedisStore struct {
	client       *redis.Client
	window       time.Duration
	maxPerWindow int64
	logger       *slog.Logger
}

// NewRedisStore creates a RedisStore with the given window and budget.
func NewRedisStore(client *redis.Client, window time.Duration, maxPerWindow int, logger *slog.Logger) *RedisStore {
	return &RedisStore{
		client:       client,
		window:       window,
		maxPerWindow: int64(maxPerWindow),
		logger:       logger,
	}
}

// Allow implements [Store] with INCR + EXPIRE on the first hit of a window.
//
// Redis errors fail open: a degraded limiter must not take the site down.
func (store *RedisStore) Allow(ctx context.Context, key string) bool {
	redisKey := constants.RedisPrefixRateLimit + key

	count, err := store.client.Incr(ctx, redisKey).Result()
	if err != nil {
		store.logger.Warn("ratelimit_redis_unavailable", slog.Any("error", err))
		return true
	}

	// First hit of the window owns setting the expiry.
	if count == 1 {
		if err := store.client.Expire(ctx, redisKey, store.window).Err(); err != nil {
			store.logger.Warn("ratelimit_expire_failed", slog.Any("error", err))
		}
	}

	return count <= store.maxPerWindow
}
