package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Limiter decides whether one more request from key fits in its budget
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// RedisLimiter enforces a per-key request budget shared by every API instance
type RedisLimiter struct {
	client  *redis.Client
	limit   int
	window  time.Duration
	baseKey string
}

// NewRedisLimiter creates a limiter allowing limit requests per key per minute
func NewRedisLimiter(redisURL string, limit int, baseKey string) (*RedisLimiter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisLimiter{
		client:  client,
		limit:   limit,
		window:  60 * time.Second, // 1 minute fixed window
		baseKey: baseKey,
	}, nil
}

// Allow counts one request for key in the current minute.
// Redis errors let the request through.
func (r *RedisLimiter) Allow(ctx context.Context, key string) bool {
	if r.limit <= 0 {
		return true
	}

	// Simple Fixed Window Counter
	// Key: <base>:<client>:<minute_timestamp>
	windowKey := fmt.Sprintf("%s:%s:%d", r.baseKey, key, time.Now().Unix()/int64(r.window.Seconds()))

	count, err := r.client.Incr(ctx, windowKey).Result()
	if err != nil {
		log.Error().Err(err).Msg("RateLimiter: Redis error")
		return true
	}

	// Set expiry on first increment
	if count == 1 {
		r.client.Expire(ctx, windowKey, 2*r.window)
	}

	if count > int64(r.limit) {
		log.Warn().
			Str("client", key).
			Int64("count", count).
			Int("limit", r.limit).
			Msg("Rate limit exceeded")
		return false
	}
	return true
}

// Close closes the Redis client
func (r *RedisLimiter) Close() error {
	return r.client.Close()
}
