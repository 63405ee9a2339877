package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/carebook/booking-api/internal/model"
	"github.com/carebook/booking-api/internal/repository"
	apperrors "github.com/carebook/booking-api/pkg/errors"
	"github.com/carebook/booking-api/pkg/security"
)

type Service struct {
	users  repository.UserRepository
	hasher security.PasswordHasher
}

func NewService(users repository.UserRepository, hasher security.PasswordHasher) *Service {
	return &Service{users: users, hasher: hasher}
}

// Register creates a user with a hashed password. Emails are unique across
// both user types.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) error {
	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return apperrors.Internal("Server error during registration", err)
	}
	if exists {
		return apperrors.Conflict("User with this email already exists")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return apperrors.Internal("Server error during registration", fmt.Errorf("failed to hash password: %w", err))
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Type:     req.Type,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return apperrors.Internal("Server error during registration", err)
	}
	return nil
}

// Login verifies email, account type and password, in that order. The type
// mismatch message leaks the actual registered type on purpose; the web
// client uses it to steer the user to the right portal.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.UserInfo, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Auth("User not found. Please register.")
	}
	if err != nil {
		return nil, apperrors.Internal("Server error during login", err)
	}

	if user.Type != req.Type {
		return nil, apperrors.Auth(fmt.Sprintf("This email is registered as a %s, not a %s.", user.Type, req.Type))
	}

	if err := s.hasher.Compare(user.Password, req.Password); err != nil {
		return nil, apperrors.Auth("Incorrect password")
	}

	return &model.UserInfo{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Type:  user.Type,
	}, nil
}

// EmailExists backs the registration form's availability check.
func (s *Service) EmailExists(ctx context.Context, email string) (bool, error) {
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return false, apperrors.Internal("Server error while checking email", err)
	}
	return exists, nil
}
