package redis_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JhonRainbow6/WebProject/pkg/redis"
)

func newStore(t *testing.T) (*redis.OnceStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redis.NewOnceStore(client, "test:"), mr
}

func TestOnceStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("take returns the value once", func(t *testing.T) {
		t.Parallel()
		store, mr := newStore(t)

		ok, err := store.Put(ctx, "code-1", "jwt", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, mr.Exists("test:code-1"))

		v, ok, err := store.Take(ctx, "code-1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "jwt", v)

		_, ok, err = store.Take(ctx, "code-1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("put does not overwrite", func(t *testing.T) {
		t.Parallel()
		store, _ := newStore(t)

		ok, err := store.Put(ctx, "k", "first", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = store.Put(ctx, "k", "second", time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)

		v, _, err := store.Take(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "first", v)
	})

	t.Run("expired values are gone", func(t *testing.T) {
		t.Parallel()
		store, mr := newStore(t)

		_, err := store.Put(ctx, "k", "v", 60*time.Second)
		require.NoError(t, err)
		mr.FastForward(61 * time.Second)

		_, ok, err := store.Take(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("concurrent takes have one winner", func(t *testing.T) {
		t.Parallel()
		store, _ := newStore(t)
		_, err := store.Put(ctx, "k", "v", time.Minute)
		require.NoError(t, err)

		var wins atomic.Int32
		var wg sync.WaitGroup
		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, ok, err := store.Take(ctx, "k"); err == nil && ok {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), wins.Load())
	})

	t.Run("server errors surface", func(t *testing.T) {
		t.Parallel()
		store, mr := newStore(t)
		mr.SetError("LOADING")

		_, err := store.Put(ctx, "k", "v", time.Minute)
		assert.Error(t, err)
		_, _, err = store.Take(ctx, "k")
		assert.Error(t, err)
	})
}

func TestConnectAndHealthcheck(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client, err := redis.Connect(ctx, redis.Config{ConnectionURL: "redis://" + mr.Addr() + "/0", RetryAttempts: 1, ConnectTimeout: time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	check := redis.Healthcheck(client)
	require.NoError(t, check(ctx))

	mr.Close()
	assert.ErrorIs(t, check(ctx), redis.ErrHealthcheckFailed)
}

func TestConnectErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, err := redis.Connect(ctx, redis.Config{})
	assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)

	_, err = redis.Connect(ctx, redis.Config{ConnectionURL: "::not a url"})
	assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)

	_, err = redis.Connect(ctx, redis.Config{ConnectionURL: "redis://127.0.0.1:1/0", RetryAttempts: 2, RetryInterval: time.Millisecond, ConnectTimeout: time.Second})
	assert.ErrorIs(t, err, redis.ErrRedisNotReady)

	assert.False(t, redis.Config{}.Enabled())
	assert.True(t, redis.Config{ConnectionURL: "redis://x"}.Enabled())
}
