package locker

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLocker(t *testing.T, cfg RedisConfig) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedis(client, cfg), srv
}

func TestRedis_AcquireRelease(t *testing.T) {
	l, srv := newRedisLocker(t, RedisConfig{Lease: time.Second, Wait: 100 * time.Millisecond})
	ctx := context.Background()

	release, err := l.Acquire(ctx, "7:3")
	require.NoError(t, err)
	assert.True(t, srv.Exists("calendar:lock:7:3"))

	require.NoError(t, release(ctx))
	assert.False(t, srv.Exists("calendar:lock:7:3"))
}

func TestRedis_Timeout(t *testing.T) {
	l, _ := newRedisLocker(t, RedisConfig{Lease: time.Second, Wait: 60 * time.Millisecond})
	ctx := context.Background()

	release, err := l.Acquire(ctx, "7:3")
	require.NoError(t, err)
	defer release(ctx)

	_, err = l.Acquire(ctx, "7:3")
	assert.ErrorIs(t, err, ErrLockTimeout)
}

func TestRedis_LeaseExpiry(t *testing.T) {
	l, srv := newRedisLocker(t, RedisConfig{Lease: time.Second, Wait: 100 * time.Millisecond})
	ctx := context.Background()

	stale, err := l.Acquire(ctx, "7:3")
	require.NoError(t, err)

	srv.FastForward(2 * time.Second)

	fresh, err := l.Acquire(ctx, "7:3")
	require.NoError(t, err)

	// the stale holder must not remove the fresh holder's key
	assert.ErrorIs(t, stale(ctx), ErrLockLost)
	assert.True(t, srv.Exists("calendar:lock:7:3"))
	assert.NoError(t, fresh(ctx))
}
