package service

import (
	"context"
	"fmt"

	"github.com/forgo/holocron/internal/model"
)

// UserService exposes user listing and account deletion
type UserService struct {
	userRepo UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List returns every user
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = make([]*model.User, 0)
	}
	return users, nil
}

// Get retrieves a user by ID
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Delete removes the acting user's own account together with their favorites
func (s *UserService) Delete(ctx context.Context, actorID, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	if actorID != id {
		return ErrForbidden
	}

	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting user %d: %w", id, err)
	}
	if !deleted {
		return ErrUserNotFound
	}
	return nil
}
