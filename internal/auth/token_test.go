package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCodec(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Issue then Verify round-trips the user id", func(t *testing.T) {
		token, err := codec.Issue(42, now)
		require.NoError(t, err)

		userID, err := codec.Verify(token, now.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, uint(42), userID)
	})

	t.Run("Token expires after its lifetime", func(t *testing.T) {
		token, err := codec.Issue(42, now)
		require.NoError(t, err)

		_, err = codec.Verify(token, now.Add(TokenLifetime+time.Second))
		assert.ErrorIs(t, err, ErrTokenExpired)

		// Just inside the window is still fine.
		userID, err := codec.Verify(token, now.Add(TokenLifetime-time.Second))
		require.NoError(t, err)
		assert.Equal(t, uint(42), userID)
	})

	t.Run("Wrong secret is rejected", func(t *testing.T) {
		token, err := codec.Issue(42, now)
		require.NoError(t, err)

		other := NewTokenCodec("different-secret")
		_, err = other.Verify(token, now)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("Tampered token is rejected", func(t *testing.T) {
		token, err := codec.Issue(42, now)
		require.NoError(t, err)

		tampered := token[:len(token)-4] + "AAAA"
		_, err = codec.Verify(tampered, now)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("Garbage input is rejected", func(t *testing.T) {
		for _, input := range []string{"", "abc", "a.b.c"} {
			_, err := codec.Verify(input, now)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		}
	})

	t.Run("Empty secret cannot issue", func(t *testing.T) {
		empty := NewTokenCodec("")
		_, err := empty.Issue(42, now)
		assert.Error(t, err)
	})
}
