package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisad "review_analyzer/internal/adapters/redis"
	"review_analyzer/internal/domain"
)

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_SetGetDel(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	var st domain.Stats
	ok, err := c.Get(ctx, "reviews:stats", &st)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "reviews:stats", domain.Stats{Total: 4, Positive: 3, PositivePercentage: 75}, 60))

	ok, err = c.Get(ctx, "reviews:stats", &st)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 4, st.Total)
	assert.Equal(t, 75.0, st.PositivePercentage)

	require.NoError(t, c.Del(ctx, "reviews:stats"))
	ok, err = c.Get(ctx, "reviews:stats", &st)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_TTLExpires(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", 5))
	mr.FastForward(6 * time.Second)

	var s string
	ok, err := c.Get(ctx, "k", &s)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_IncrReadableByGet(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	n, err := c.Incr(ctx, "reviews:gen")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_, _ = c.Incr(ctx, "reviews:gen")

	var gen int64
	ok, err := c.Get(ctx, "reviews:gen", &gen)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(2), gen)
}

func TestCache_Ping(t *testing.T) {
	c, mr := newCache(t)
	require.NoError(t, c.Ping(context.Background()))
	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}

func TestCache_UndecodableEntryIsAMiss(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()
	require.NoError(t, mr.Set("reviews:stats", "{not json"))

	var st domain.Stats
	ok, err := c.Get(ctx, "reviews:stats", &st)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists("reviews:stats"))
}

func TestCache_ZeroTTLPersists(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", 1, 0))
	mr.FastForward(24 * time.Hour)
	assert.True(t, mr.Exists("k"))
	assert.Equal(t, time.Duration(0), mr.TTL("k"))
}
