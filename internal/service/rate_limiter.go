package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wayfarerhq/wayfarer-api/pkg/database"
)

// RateLimiter handles rate limiting using Redis with a sliding window log.
type RateLimiter struct {
	redis *database.Redis
}

// RateLimitResult reports one rate-limit decision.
type RateLimitResult struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// NewRateLimiter creates a new rate limiter.
func NewRateLimiter(redis *database.Redis) *RateLimiter {
	return &RateLimiter{redis: redis}
}

// Allow records a request under the key and reports whether it fits within
// limit requests per window.
func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (*RateLimitResult, error) {
	now := time.Now()
	windowStart := now.Add(-window)
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	// Drop entries that slid out of the window.
	err := r.redis.Client.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart.UnixNano())).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to clean old entries: %w", err)
	}

	count, err := r.redis.Client.ZCard(ctx, redisKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}

	if count >= int64(limit) {
		result := &RateLimitResult{Allowed: false, Remaining: 0, RetryAfter: window}

		// The oldest entry decides when the next slot opens.
		oldest, err := r.redis.Client.ZRangeWithScores(ctx, redisKey, 0, 0).Result()
		if err == nil && len(oldest) > 0 {
			oldestTime := time.Unix(0, int64(oldest[0].Score))
			if remaining := window - now.Sub(oldestTime); remaining > 0 {
				result.RetryAfter = remaining
			}
		}
		return result, nil
	}

	member := fmt.Sprintf("%d", now.UnixNano())
	err = r.redis.Client.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: member,
	}).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to add entry: %w", err)
	}

	// Keep the key from lingering after traffic stops.
	_ = r.redis.Client.Expire(ctx, redisKey, window+time.Minute).Err()

	remaining := limit - int(count) - 1
	if remaining < 0 {
		remaining = 0
	}

	return &RateLimitResult{Allowed: true, Remaining: remaining}, nil
}
