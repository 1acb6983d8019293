package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	userKeyPrefix = "user:%d"
	postKeyPrefix = "post:%d"
	feedKey       = "posts:feed"
)

const (
	// UserTTL bounds how long a cached profile can lag a username change.
	UserTTL = 5 * time.Minute
	// FeedTTL is short; the feed must pick up new posts quickly and every
	// mutation invalidates it anyway.
	FeedTTL = 30 * time.Second
	PostTTL = 5 * time.Minute
)

// UserKey returns the cache key for a user profile.
func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

// PostKey returns the cache key for a single post.
func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

// FeedKey returns the cache key for the anonymous reverse-chronological feed.
func FeedKey() string {
	return feedKey
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	s, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// Aside tries Redis first, on miss it calls fetch (which must populate dest),
// then stores the result with ttl. Cache write failures are best-effort.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	if err == nil && found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}

// Invalidate removes a key from the cache.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateUser drops the cached profile for a user.
func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidatePost drops the cached copy of a post.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

// InvalidateFeed drops the cached anonymous feed.
func InvalidateFeed(ctx context.Context) {
	Invalidate(ctx, feedKey)
}
