package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenLifetime is how long an issued token stays valid. There is no
// server-side session table, so expiry is the only safety valve.
const TokenLifetime = 24 * time.Hour

// Sentinel errors returned by Verify.
var (
	// ErrTokenExpired means the token was well-formed and correctly signed
	// but its expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers everything else: malformed input, an altered
	// signature, or an unexpected signing method.
	ErrTokenInvalid = errors.New("token invalid")
)

// UserClaim nests the user id the way the existing clients expect it.
type UserClaim struct {
	ID uint `json:"id"`
}

// Claims is the JWT payload: {"user":{"id":N}} plus the registered claims.
type Claims struct {
	User UserClaim `json:"user"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies signed session tokens. It is pure and
// in-memory; the secret is set once at construction and safely shared.
type TokenCodec struct {
	secret   []byte
	lifetime time.Duration
}

// NewTokenCodec returns a codec signing with the given process-wide secret.
func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), lifetime: TokenLifetime}
}

// Issue creates a signed token for the user, valid for 24 hours from now.
func (tc *TokenCodec) Issue(userID uint, now time.Time) (string, error) {
	if len(tc.secret) == 0 {
		return "", fmt.Errorf("token codec: signing secret not configured")
	}

	claims := Claims{
		User: UserClaim{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.lifetime)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tc.secret)
}

// Verify checks the signature and expiry of a token and returns the user id
// it was issued for. Expired-but-authentic tokens fail with ErrTokenExpired;
// anything tampered or malformed fails with ErrTokenInvalid.
func (tc *TokenCodec) Verify(tokenString string, now time.Time) (uint, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tc.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}

	if claims.User.ID == 0 {
		return 0, ErrTokenInvalid
	}
	return claims.User.ID, nil
}
