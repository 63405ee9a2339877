package user

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carebook/booking-api/internal/model"
	"github.com/carebook/booking-api/internal/repository"
	apperrors "github.com/carebook/booking-api/pkg/errors"
)

type Service struct {
	users repository.UserRepository
}

func NewService(users repository.UserRepository) *Service {
	return &Service{users: users}
}

// Get returns the user by id. The password digest never leaves the model's
// JSON projection, so no stripping is needed here.
func (s *Service) Get(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("User not found")
	}

	user, err := s.users.Get(ctx, oid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("User not found")
	}
	if err != nil {
		return nil, apperrors.Internal("Server error while fetching user", err)
	}
	return user, nil
}

// ListClinicians returns all users registered as clinicians, for the
// booking flow's clinician picker.
func (s *Service) ListClinicians(ctx context.Context) ([]*model.User, error) {
	clinicians, err := s.users.ListByType(ctx, model.UserTypeClinician)
	if err != nil {
		return nil, apperrors.Internal("Server error while fetching clinicians", err)
	}
	if clinicians == nil {
		clinicians = []*model.User{}
	}
	return clinicians, nil
}
