package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/pay-publicapi/internal/testutil"
)

func TestLimiter_Allow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	rdb := testutil.SetupTestRedis(t)
	ctx := context.Background()

	t.Run("allows up to the limit then rejects", func(t *testing.T) {
		l := New(rdb, 3, time.Minute)

		for i := range 3 {
			ok, err := l.Allow(ctx, "acct-a")
			require.NoError(t, err)
			assert.True(t, ok, "request %d", i+1)
		}

		ok, err := l.Allow(ctx, "acct-a")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("keys are counted separately", func(t *testing.T) {
		l := New(rdb, 1, time.Minute)

		ok, err := l.Allow(ctx, "acct-b")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = l.Allow(ctx, "acct-c")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("window expires", func(t *testing.T) {
		l := New(rdb, 1, time.Second)

		ok, err := l.Allow(ctx, "acct-d")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = l.Allow(ctx, "acct-d")
		require.NoError(t, err)
		assert.False(t, ok)

		require.Eventually(t, func() bool {
			ok, err := l.Allow(ctx, "acct-d")
			return err == nil && ok
		}, 5*time.Second, 200*time.Millisecond)
	})

	t.Run("sets expiry on first hit", func(t *testing.T) {
		l := New(rdb, 5, time.Minute)

		_, err := l.Allow(ctx, "acct-e")
		require.NoError(t, err)

		ttl, err := rdb.TTL(ctx, keyPrefix+"acct-e").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})

	t.Run("counter left without expiry gets one", func(t *testing.T) {
		k := keyPrefix + "acct-f"
		require.NoError(t, rdb.Set(ctx, k, 7, 0).Err())

		l := New(rdb, 5, time.Minute)
		ok, err := l.Allow(ctx, "acct-f")
		require.NoError(t, err)
		assert.False(t, ok)

		ttl, err := rdb.TTL(ctx, k).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})

	t.Run("later hits do not extend the window", func(t *testing.T) {
		l := New(rdb, 5, time.Minute)

		_, err := l.Allow(ctx, "acct-g")
		require.NoError(t, err)
		require.NoError(t, rdb.Expire(ctx, keyPrefix+"acct-g", 10*time.Second).Err())

		_, err = l.Allow(ctx, "acct-g")
		require.NoError(t, err)

		ttl, err := rdb.TTL(ctx, keyPrefix+"acct-g").Result()
		require.NoError(t, err)
		assert.LessOrEqual(t, ttl, 10*time.Second)
	})
}

func TestLimiter_AllowFailsWhenRedisUnreachable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { rdb.Close() })

	l := New(rdb, 1, time.Minute)
	_, err := l.Allow(context.Background(), "acct")
	assert.Error(t, err)
	assert.Error(t, l.Ping(context.Background()))
}
