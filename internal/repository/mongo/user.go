package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carebook/booking-api/internal/model"
	"github.com/carebook/booking-api/internal/repository"
)

const usersCollection = "users"

type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository returns a UserRepository backed by the users collection.
func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &userRepository{coll: db.Collection(usersCollection)}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	if user.Appointments == nil {
		user.Appointments = []model.Appointment{}
	}

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("email already registered: %w", err)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	var user model.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, fmt.Errorf("failed to count users by email: %w", err)
	}
	return count > 0, nil
}

func (r *userRepository) ListByType(ctx context.Context, userType string) ([]*model.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"type": userType})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return decodeUsers(ctx, cursor)
}

func (r *userRepository) AppendAppointment(ctx context.Context, userID primitive.ObjectID, appt *model.Appointment) error {
	res, err := r.coll.UpdateByID(ctx, userID, bson.M{
		"$push": bson.M{"appointments": appt},
	})
	if err != nil {
		return fmt.Errorf("failed to append appointment: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AssignClinician sets clinicianId on the embedded appointment matched by
// _id, using the positional operator against the owning document.
func (r *userRepository) AssignClinician(ctx context.Context, appointmentID, clinicianID primitive.ObjectID) error {
	filter := bson.M{"appointments._id": appointmentID}
	update := bson.M{"$set": bson.M{"appointments.$.clinicianId": clinicianID}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to assign clinician: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// FindByClinicianAndWindow is the coarse store-side filter for the by-date
// lookup. $elemMatch requires a single embedded appointment to satisfy both
// clauses, but the result is still the whole user document, appointments
// outside the window included.
func (r *userRepository) FindByClinicianAndWindow(ctx context.Context, clinicianID primitive.ObjectID, start, end time.Time) ([]*model.User, error) {
	filter := bson.M{
		"appointments": bson.M{
			"$elemMatch": bson.M{
				"clinicianId": clinicianID,
				"date":        bson.M{"$gte": start, "$lte": end},
			},
		},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments by clinician and window: %w", err)
	}
	return decodeUsers(ctx, cursor)
}

func (r *userRepository) FindByClinician(ctx context.Context, clinicianID primitive.ObjectID) ([]*model.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"appointments.clinicianId": clinicianID})
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments by clinician: %w", err)
	}
	return decodeUsers(ctx, cursor)
}

func decodeUsers(ctx context.Context, cursor *mongo.Cursor) ([]*model.User, error) {
	defer cursor.Close(ctx)

	var users []*model.User
	for cursor.Next(ctx) {
		var user model.User
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		users = append(users, &user)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return users, nil
}
