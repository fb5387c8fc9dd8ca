package auth

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryOnceStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("value is taken once", func(t *testing.T) {
		t.Parallel()
		s := NewMemoryOnceStore(10, time.Minute)

		ok, err := s.Put(ctx, "k", "v", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)

		v, ok, err := s.Take(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "v", v)

		_, ok, err = s.Take(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("put does not overwrite", func(t *testing.T) {
		t.Parallel()
		s := NewMemoryOnceStore(10, time.Minute)

		ok, _ := s.Put(ctx, "k", "first", time.Minute)
		assert.True(t, ok)
		ok, _ = s.Put(ctx, "k", "second", time.Minute)
		assert.False(t, ok)

		v, _, _ := s.Take(ctx, "k")
		assert.Equal(t, "first", v)
	})

	t.Run("expired entries are gone", func(t *testing.T) {
		t.Parallel()
		s := NewMemoryOnceStore(10, time.Minute)
		now := time.Now()
		s.now = func() time.Time { return now }

		_, _ = s.Put(ctx, "k", "v", time.Second)
		now = now.Add(2 * time.Second)

		_, ok, err := s.Take(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)

		ok, _ = s.Put(ctx, "k", "again", time.Second)
		assert.True(t, ok)
	})

	t.Run("concurrent takes have one winner", func(t *testing.T) {
		t.Parallel()
		s := NewMemoryOnceStore(10, time.Minute)
		_, _ = s.Put(ctx, "k", "v", time.Minute)

		var wins atomic.Int32
		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, ok, _ := s.Take(ctx, "k"); ok {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), wins.Load())
	})
}

func TestExchangeCodes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	codes := NewExchangeCodes(NewMemoryOnceStore(10, time.Minute), 0)

	code, err := codes.Issue(ctx, "jwt-token")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(code), 40)

	token, err := codes.Redeem(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)

	_, err = codes.Redeem(ctx, code)
	assert.ErrorIs(t, err, ErrInvalidCode)

	_, err = codes.Redeem(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidCode)

	other, err := codes.Issue(ctx, "jwt-token")
	require.NoError(t, err)
	assert.NotEqual(t, code, other)
}
