package limiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBackoff_Ladder(t *testing.T) {
	t.Parallel()

	var got []time.Duration
	for f := 1; f <= 12; f++ {
		got = append(got, Backoff(f, 5, DefaultMaxBlock))
	}
	s := time.Second
	require.Equal(t, []time.Duration{0, 0, 0, 0, s, 2 * s, 4 * s, 8 * s, 16 * s, 32 * s, 32 * s, 32 * s}, got)
	require.Equal(t, DefaultMaxBlock, Backoff(1000, 5, DefaultMaxBlock))
}

func TestMemory_BlocksAndResets(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(time.Minute, 2, 0)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	blocked, _, err := m.Failure(ctx, "v")
	require.NoError(t, err)
	require.False(t, blocked)

	blocked, d, err := m.Failure(ctx, "v")
	require.NoError(t, err)
	require.True(t, blocked)
	require.Equal(t, time.Second, d)

	ok, retry, err := m.Allow(ctx, "v")
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, time.Second, retry)

	ok, _, _ = m.Allow(ctx, "other")
	require.True(t, ok, "vaults are independent")

	now = now.Add(2 * time.Second)
	ok, _, _ = m.Allow(ctx, "v")
	require.True(t, ok)

	require.NoError(t, m.Success(ctx, "v"))
	blocked, _, _ = m.Failure(ctx, "v")
	require.False(t, blocked, "success resets the count")
}

func TestMemory_WindowExpiryRestartsCount(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(time.Minute, 2, 0)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	_, _, _ = m.Failure(ctx, "v")
	now = now.Add(2 * time.Minute)
	blocked, _, _ := m.Failure(ctx, "v")
	require.False(t, blocked)
}

func TestMemory_AttemptBucket(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(time.Minute, 5, 0)
	m.attemptBurst = 3
	m.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, _, err := m.Allow(ctx, "v")
		require.NoError(t, err)
		require.True(t, ok)
	}
	ok, retry, err := m.Allow(ctx, "v")
	require.NoError(t, err)
	require.False(t, ok, "burst spent")
	require.Equal(t, DefaultAttemptEvery, retry)

	require.NoError(t, m.Success(ctx, "v"))
	ok, _, _ = m.Allow(ctx, "v")
	require.False(t, ok, "success does not refill the bucket")

	now = now.Add(DefaultAttemptEvery)
	ok, _, _ = m.Allow(ctx, "v")
	require.True(t, ok)
}

func TestNop(t *testing.T) {
	t.Parallel()

	var l Limiter = Nop{}
	ok, _, err := l.Allow(context.Background(), "v")
	require.NoError(t, err)
	require.True(t, ok)
}
