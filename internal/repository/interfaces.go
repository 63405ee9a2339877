package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carebook/booking-api/internal/model"
)

// ErrNotFound is returned by lookups when no document matches.
var ErrNotFound = errors.New("document not found")

// UserRepository is the contract against the record store. Appointments are
// reached exclusively through their owning user documents.
//
// The two Find* methods are coarse store-side filters: the store matches
// whole user documents whose embedded array satisfies the predicate, so the
// returned users may carry appointments that do NOT match. Callers must
// re-check every embedded appointment in memory.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListByType(ctx context.Context, userType string) ([]*model.User, error)

	AppendAppointment(ctx context.Context, userID primitive.ObjectID, appt *model.Appointment) error
	AssignClinician(ctx context.Context, appointmentID, clinicianID primitive.ObjectID) error

	FindByClinicianAndWindow(ctx context.Context, clinicianID primitive.ObjectID, start, end time.Time) ([]*model.User, error)
	FindByClinician(ctx context.Context, clinicianID primitive.ObjectID) ([]*model.User, error)
}
