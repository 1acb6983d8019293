package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ripple/internal/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp(codec *auth.TokenCodec) *fiber.App {
	app := fiber.New()
	app.Get("/protected", AuthRequired(codec), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": CurrentUserID(c)})
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	codec := auth.NewTokenCodec("test-secret")
	app := newProtectedApp(codec)

	validToken, err := codec.Issue(42, time.Now())
	require.NoError(t, err)

	expiredToken, err := codec.Issue(42, time.Now().Add(-25*time.Hour))
	require.NoError(t, err)

	otherCodec := auth.NewTokenCodec("other-secret")
	forgedToken, err := otherCodec.Issue(42, time.Now())
	require.NoError(t, err)

	tests := []struct {
		name            string
		token           string
		expectedStatus  int
		expectedMessage string
	}{
		{"Valid token", validToken, http.StatusOK, ""},
		{"Missing token", "", http.StatusUnauthorized, "No token, authorization denied"},
		{"Expired token", expiredToken, http.StatusUnauthorized, "Token is not valid"},
		{"Forged token", forgedToken, http.StatusUnauthorized, "Token is not valid"},
		{"Garbage token", "not.a.token", http.StatusUnauthorized, "Token is not valid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.token != "" {
				req.Header.Set(TokenHeader, tt.token)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			var parsed map[string]any
			require.NoError(t, json.Unmarshal(body, &parsed))

			if tt.expectedMessage != "" {
				assert.Equal(t, tt.expectedMessage, parsed["message"])
			} else {
				assert.Equal(t, float64(42), parsed["user_id"])
			}
		})
	}
}

func TestCurrentUserID_Unset(t *testing.T) {
	app := fiber.New()
	app.Get("/open", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": CurrentUserID(c)})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/open", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	var parsed map[string]any
	require.NoError(t, json.Unmarshal(body, &parsed))
	assert.Equal(t, float64(0), parsed["user_id"])
}
