// Package repositorytest provides an in-memory UserRepository for tests.
package repositorytest

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carebook/booking-api/internal/model"
	"github.com/carebook/booking-api/internal/repository"
)

// FakeUserRepository reproduces the store's coarse matching semantics: the
// Find* methods return whole user documents when any embedded appointment
// satisfies the predicate, non-matching array entries included. Services
// under test therefore see exactly the partial matches the real store hands
// back.
type FakeUserRepository struct {
	Users []*model.User
}

// New returns a fake pre-populated with the given users.
func New(users ...*model.User) *FakeUserRepository {
	return &FakeUserRepository{Users: users}
}

var _ repository.UserRepository = (*FakeUserRepository)(nil)

func (f *FakeUserRepository) Create(_ context.Context, user *model.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	f.Users = append(f.Users, user)
	return nil
}

func (f *FakeUserRepository) Get(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	for _, u := range f.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *FakeUserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *FakeUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *FakeUserRepository) ListByType(_ context.Context, userType string) ([]*model.User, error) {
	var out []*model.User
	for _, u := range f.Users {
		if u.Type == userType {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *FakeUserRepository) AppendAppointment(_ context.Context, userID primitive.ObjectID, appt *model.Appointment) error {
	for _, u := range f.Users {
		if u.ID == userID {
			u.Appointments = append(u.Appointments, *appt)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *FakeUserRepository) AssignClinician(_ context.Context, appointmentID, clinicianID primitive.ObjectID) error {
	for _, u := range f.Users {
		for i := range u.Appointments {
			if u.Appointments[i].ID == appointmentID {
				id := clinicianID
				u.Appointments[i].ClinicianID = &id
				return nil
			}
		}
	}
	return repository.ErrNotFound
}

func (f *FakeUserRepository) FindByClinicianAndWindow(_ context.Context, clinicianID primitive.ObjectID, start, end time.Time) ([]*model.User, error) {
	var out []*model.User
	for _, u := range f.Users {
		for _, a := range u.Appointments {
			if a.ClinicianID != nil && *a.ClinicianID == clinicianID &&
				!a.Date.Before(start) && !a.Date.After(end) {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}

func (f *FakeUserRepository) FindByClinician(_ context.Context, clinicianID primitive.ObjectID) ([]*model.User, error) {
	var out []*model.User
	for _, u := range f.Users {
		for _, a := range u.Appointments {
			if a.ClinicianID != nil && *a.ClinicianID == clinicianID {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}
