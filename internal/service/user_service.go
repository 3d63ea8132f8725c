package service

import (
	"context"
	"fmt"

	apperrors "aivault/internal/errors"
	"aivault/internal/model"
	"aivault/internal/repository"
)

// UserService handles administrative user management.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, username string) error
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// List returns all registered users.
func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Delete removes a user by username.
func (s *userService) Delete(ctx context.Context, username string) error {
	affected, err := s.userRepo.Delete(ctx, username)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
