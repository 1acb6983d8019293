package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// UserService exposes profile reads.
type UserService struct {
	users repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetUserByID returns the user with the given id.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}
