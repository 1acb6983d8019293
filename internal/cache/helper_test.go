package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedPost struct {
	ID      uint   `json:"id"`
	Content string `json:"content"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	prev := GetClient()
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(prev) })

	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetchCalls := 0
	fetch := func(dest *cachedPost) func() error {
		return func() error {
			fetchCalls++
			dest.ID = 1
			dest.Content = "hello"
			return nil
		}
	}

	var first cachedPost
	require.NoError(t, Aside(ctx, PostKey(1), &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, fetchCalls)
	assert.Equal(t, "hello", first.Content)

	var second cachedPost
	require.NoError(t, Aside(ctx, PostKey(1), &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, fetchCalls, "second read should be served from cache")
	assert.Equal(t, first, second)
}

func TestAside_FetchError(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	var dest cachedPost
	wantErr := errors.New("db down")
	err := Aside(ctx, PostKey(2), &dest, time.Minute, func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)

	found, err := GetJSON(ctx, PostKey(2), &dest)
	require.NoError(t, err)
	assert.False(t, found, "failed fetches must not be cached")
}

func TestInvalidate(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, FeedKey(), []cachedPost{{ID: 1}}, time.Minute))
	InvalidateFeed(ctx)

	var posts []cachedPost
	found, err := GetJSON(ctx, FeedKey(), &posts)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside_NoClient(t *testing.T) {
	prev := GetClient()
	SetClient(nil)
	defer SetClient(prev)

	ctx := context.Background()
	fetchCalls := 0
	var dest cachedPost

	fetch := func() error {
		fetchCalls++
		dest.ID = 3
		return nil
	}

	require.NoError(t, Aside(ctx, PostKey(3), &dest, time.Minute, fetch))
	require.NoError(t, Aside(ctx, PostKey(3), &dest, time.Minute, fetch))
	assert.Equal(t, 2, fetchCalls, "without Redis every read goes to the store")
}
