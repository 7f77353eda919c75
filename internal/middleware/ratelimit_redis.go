package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter делит лимит между репликами: фиксированное окно, выровненное по времени
type RedisLimiter struct {
	client redis.Cmdable
	rpm    int
	window time.Duration
	prefix string
	now    func() time.Time
}

func NewRedisLimiter(client redis.Cmdable, rpm int, window time.Duration) *RedisLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{
		client: client,
		rpm:    rpm,
		window: window,
		prefix: "taskify:ratelimit:",
		now:    time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	windowStart := l.now().Truncate(l.window)
	resetAt := windowStart.Add(l.window)
	redisKey := l.prefix + key + ":" + strconv.FormatInt(windowStart.Unix(), 10)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, l.window)
		return nil
	})
	if err != nil {
		return Decision{}, fmt.Errorf("счётчик лимита: %w", err)
	}

	count := int(incr.Val())
	return Decision{
		Allowed:   count <= l.rpm,
		Limit:     l.rpm,
		Remaining: l.rpm - count,
		ResetAt:   resetAt,
	}, nil
}
