package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	require.NoError(t, s.Set(ctx, "k", map[string]any{"user_id": 7}, 0))

	var got map[string]any
	require.NoError(t, s.Get(ctx, "k", &got))
	assert.Equal(t, float64(7), got["user_id"])

	require.NoError(t, s.Del(ctx, "k"))
	assert.ErrorIs(t, s.Get(ctx, "k", &got), ErrMiss)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "k", "v", time.Minute))

	var got string
	require.NoError(t, s.Get(ctx, "k", &got))

	now = now.Add(2 * time.Minute)
	assert.ErrorIs(t, s.Get(ctx, "k", &got), ErrMiss)
}

func TestRememberComputesOnceUntilForgotten(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	calls := 0
	fn := func() (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := Remember(ctx, s, "answer", time.Minute, fn)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	}
	assert.Equal(t, 1, calls)

	require.NoError(t, Forget(ctx, s, "answer"))
	_, err := Remember(ctx, s, "answer", time.Minute, fn)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRememberDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	boom := errors.New("boom")

	_, err := Remember(ctx, s, "k", time.Minute, func() (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)

	var got string
	assert.ErrorIs(t, s.Get(ctx, "k", &got), ErrMiss)
}
