// Package service implements the application's domain orchestration layer.
package service

import (
	"context"
	"time"

	"ripple/internal/auth"
	"ripple/internal/models"
	"ripple/internal/repository"
)

// AuthService orchestrates registration, login, and token issuance.
type AuthService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenCodec
}

// RegisterInput carries the already-validated registration fields.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// NewAuthService returns a new AuthService with explicit dependencies.
func NewAuthService(users repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenCodec) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Register creates an account and returns a session token for it. A user
// with the same email or username fails with a conflict; the pre-insert
// lookups only make the common case friendly, the store's unique constraints
// settle concurrent duplicates.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}
	if existing == nil {
		existing, err = s.users.GetByUsername(ctx, in.Username)
		if err != nil {
			return "", err
		}
	}
	if existing != nil {
		return "", models.NewConflictError("User already exists")
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: digest,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(user.ID, time.Now())
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return token, nil
}

// Login verifies credentials and returns a session token. An unknown email
// and a wrong password fail identically so responses never reveal which
// half of the credential pair was bad.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", models.NewInvalidCredentialsError()
	}

	if !s.hasher.Verify(password, user.Password) {
		return "", models.NewInvalidCredentialsError()
	}

	token, err := s.tokens.Issue(user.ID, time.Now())
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return token, nil
}
