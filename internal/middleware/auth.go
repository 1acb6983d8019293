// Package middleware provides authentication, logging, and metrics middleware.
package middleware

import (
	"ripple/internal/auth"
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// TokenHeader is the request header carrying the raw session token.
// The existing clients send the token bare in this header rather than an
// Authorization: Bearer scheme, so the name must not change.
const TokenHeader = "x-auth-token"

// UserIDKey is the Fiber locals key under which the authenticated user id is stored.
const UserIDKey = "userID"

// AuthRequired enforces authentication on protected routes. On success the
// authenticated user id is stored in locals for downstream handlers.
func AuthRequired(codec *auth.TokenCodec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Get(TokenHeader)
		if tokenString == "" {
			AuthFailures.WithLabelValues("missing_token").Inc()
			return models.RespondWithError(c,
				models.NewUnauthenticatedError("No token, authorization denied"))
		}

		userID, err := codec.Verify(tokenString, nowUTC())
		if err != nil {
			if err == auth.ErrTokenExpired {
				AuthFailures.WithLabelValues("expired_token").Inc()
			} else {
				AuthFailures.WithLabelValues("invalid_token").Inc()
			}
			return models.RespondWithError(c,
				models.NewUnauthenticatedError("Token is not valid"))
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// CurrentUserID returns the authenticated user id set by AuthRequired.
// It is zero on routes that did not pass through the middleware.
func CurrentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals(UserIDKey).(uint); ok {
		return id
	}
	return 0
}
