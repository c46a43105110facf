package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisWindowScript trims expired members, checks capacity, and records the
// request in one atomic evaluation. Each member carries a per-process
// sequence suffix so two requests on the same timestamp still count
// separately.
var redisWindowScript = redis.NewScript(`
redis.call('ZREMRANGEBYSCORE', KEYS[1], 0, ARGV[1])
if redis.call('ZCARD', KEYS[1]) >= tonumber(ARGV[2]) then
	return 0
end
redis.call('ZADD', KEYS[1], ARGV[3], ARGV[4])
redis.call('PEXPIRE', KEYS[1], ARGV[5])
return 1
`)

// RedisLimiter is a RateLimiter backed by Redis sorted sets, for deployments
// running more than one instance against the same customer base. Semantics
// match SlidingWindowLimiter.
type RedisLimiter struct {
	client     *redis.Client
	windowSize time.Duration
	capacity   int
	keyPrefix  string
	seq        atomic.Int64
}

// NewRedisLimiter creates a Redis-backed sliding window limiter.
func NewRedisLimiter(client *redis.Client, windowSize time.Duration, capacity int) *RedisLimiter {
	return &RedisLimiter{
		client:     client,
		windowSize: windowSize,
		capacity:   capacity,
		keyPrefix:  "ratelimit:",
	}
}

// Allow implements RateLimiter. A Redis failure is returned to the caller
// rather than silently admitting or refusing the request.
func (r *RedisLimiter) Allow(ctx context.Context, customerID string, now time.Time) (bool, error) {
	if customerID == "" {
		customerID = AnonymousCustomer
	}

	key := r.keyPrefix + customerID
	cutoff := now.Add(-r.windowSize).UnixNano()
	member := r.member(now)

	allowed, err := redisWindowScript.Run(ctx, r.client, []string{key},
		cutoff, r.capacity, now.UnixNano(), member, r.windowSize.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("rate limit check failed: %w", err)
	}

	return allowed == 1, nil
}

// member builds a collision-free sorted-set member for one request. The
// score carries the timestamp; the sequence suffix keeps members distinct
// even when two requests share a nanosecond.
func (r *RedisLimiter) member(now time.Time) string {
	return fmt.Sprintf("%d-%d", now.UnixNano(), r.seq.Add(1))
}
