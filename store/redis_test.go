package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	return redis.NewClient(&redis.Options{Addr: s.Addr()})
}

func TestRedisTokenStore_RoundTrip(t *testing.T) {
	s := NewRedisTokenStore(newTestRedis(t))
	ctx := context.Background()

	record := TokenRecord{UserID: "42", AccessToken: "AT1", RefreshToken: "RT1", ExpiresAt: 1700000000}
	require.NoError(t, s.Put(ctx, record))

	got, err := s.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, record, *got)
}

func TestRedisTokenStore_GetMissing(t *testing.T) {
	s := NewRedisTokenStore(newTestRedis(t))

	_, err := s.Get(context.Background(), "42")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestRedisTokenStore_LastWriteWins(t *testing.T) {
	s := NewRedisTokenStore(newTestRedis(t))
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, TokenRecord{UserID: "42", AccessToken: "AT1"}))
	require.NoError(t, s.Put(ctx, TokenRecord{UserID: "42", AccessToken: "AT2"}))

	got, err := s.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "AT2", got.AccessToken)
}

func TestRedisStateStore_SingleUse(t *testing.T) {
	s := NewRedisStateStore(newTestRedis(t), 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "deadbeef"))

	ok, err := s.Consume(ctx, "deadbeef")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Consume(ctx, "deadbeef")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStateStore_TTLExpiry(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStateStore(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "deadbeef"))
	mr.FastForward(2 * time.Minute)

	ok, err := s.Consume(ctx, "deadbeef")
	require.NoError(t, err)
	assert.False(t, ok)
}
