package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/conveyancing-service/internal/persistence"
)

// LoginThrottle counts failed login attempts per account identifier.
type LoginThrottle interface {
	Failures(ctx context.Context, email string) (int, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// RedisLoginThrottle keeps per-email failure counters in redis with a
// sliding expiry window.
type RedisLoginThrottle struct {
	redis  *persistence.Redis
	window time.Duration
}

// NewRedisLoginThrottle builds the redis-backed counter.
func NewRedisLoginThrottle(r *persistence.Redis, window time.Duration) *RedisLoginThrottle {
	return &RedisLoginThrottle{redis: r, window: window}
}

func failKey(email string) string {
	return "login:failed:" + email
}

// Failures reports the current counter for the email. A missing key counts
// as zero; any other redis error is returned to the caller.
func (t *RedisLoginThrottle) Failures(ctx context.Context, email string) (int, error) {
	count, err := t.redis.Client.Get(ctx, failKey(email)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

// RecordFailure increments the counter and refreshes its expiry.
func (t *RedisLoginThrottle) RecordFailure(ctx context.Context, email string) error {
	pipe := t.redis.Client.TxPipeline()
	pipe.Incr(ctx, failKey(email))
	pipe.Expire(ctx, failKey(email), t.window)
	_, err := pipe.Exec(ctx)
	return err
}

// Reset drops the counter after a successful login.
func (t *RedisLoginThrottle) Reset(ctx context.Context, email string) error {
	return t.redis.Client.Del(ctx, failKey(email)).Err()
}
