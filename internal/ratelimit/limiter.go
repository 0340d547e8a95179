// Package ratelimit counts requests per key in fixed windows stored in
// Redis, so every gateway instance shares the same budget.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "publicapi:ratelimit:"

type Limiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func New(rdb *redis.Client, limit int, window time.Duration) *Limiter {
	return &Limiter{rdb: rdb, limit: limit, window: window}
}

// Allow counts one request against key and reports whether it is within
// the limit. The window starts at the first request seen for key. The
// counter and its expiry are written in one transaction, and EXPIRE NX
// only sets a TTL when the key has none, so a key can never outlive its
// window.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	k := keyPrefix + key

	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("Allow: %w", err)
	}

	return incr.Val() <= int64(l.limit), nil
}

func (l *Limiter) Ping(ctx context.Context) error {
	return l.rdb.Ping(ctx).Err()
}

func (l *Limiter) Close() error {
	return l.rdb.Close()
}
