package appointment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/patrickmn/go-cache"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carebook/booking-api/internal/model"
	"github.com/carebook/booking-api/internal/repository"
	apperrors "github.com/carebook/booking-api/pkg/errors"
)

const dateLayout = "2006-01-02"

// Timeframe labels returned by ComputeAnalytics.
const (
	periodToday   = "Today"
	periodWeek    = "This Week"
	periodMonth   = "This Month"
	periodAllTime = "All Time"
)

// Service implements appointment booking and the query/aggregation engine
// over embedded appointment arrays. Analytics results are cached briefly per
// clinician and timeframe since they scan every matching user document.
type Service struct {
	users repository.UserRepository
	cache *cache.Cache
	now   func() time.Time
}

func NewService(users repository.UserRepository, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &Service{
		users: users,
		cache: cache.New(cacheTTL, 2*cacheTTL),
		now:   time.Now,
	}
}

// Book appends a new appointment to the patient identified by email. The
// appointment _id is assigned here, before the push, so callers get it back
// without a re-read.
func (s *Service) Book(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("User not found with this email")
	}
	if err != nil {
		return nil, apperrors.Internal("Server error while creating appointment", err)
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, apperrors.Validation("Invalid date format")
	}

	appt := &model.Appointment{
		ID:           primitive.NewObjectID(),
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Date:         date,
		Time:         req.Time,
		Status:       model.AppointmentStatusScheduled,
		Symptoms:     req.Symptoms,
		UrgencyLevel: model.UrgencyRoutine,
		Hospital:     req.Hospital,
		Notes:        req.Notes,
		Duration:     req.Duration,
	}
	if req.Status != "" {
		appt.Status = model.AppointmentStatus(req.Status)
	}
	if req.UrgencyLevel != "" {
		appt.UrgencyLevel = model.UrgencyLevel(req.UrgencyLevel)
	}

	if err := s.users.AppendAppointment(ctx, user.ID, appt); err != nil {
		return nil, apperrors.Internal("Server error while creating appointment", err)
	}
	return appt, nil
}

// AssignClinician sets the clinician back-reference on an existing embedded
// appointment. The clinician id is not checked against the users collection;
// a dangling reference is silently dropped later by the in-memory filters.
func (s *Service) AssignClinician(ctx context.Context, appointmentID, clinicianID string) error {
	if clinicianID == "" {
		return apperrors.Validation("clinicianId is required")
	}
	apptOID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return apperrors.NotFound("Appointment not found")
	}
	clinOID, err := primitive.ObjectIDFromHex(clinicianID)
	if err != nil {
		return apperrors.Validation("Invalid clinicianId")
	}

	err = s.users.AssignClinician(ctx, apptOID, clinOID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("Appointment not found")
	}
	if err != nil {
		return apperrors.Internal("Server error while assigning clinician", err)
	}
	return nil
}

// ListForPatient returns the embedded appointments of the user identified by
// email, in stored order.
func (s *Service) ListForPatient(ctx context.Context, email string) ([]model.Appointment, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("User not found with this email")
	}
	if err != nil {
		return nil, apperrors.Internal("Server error while fetching appointments", err)
	}
	if user.Appointments == nil {
		return []model.Appointment{}, nil
	}
	return user.Appointments, nil
}

// FindByClinicianAndDate returns every appointment for the clinician whose
// date falls inside the UTC day window of the given calendar date, projected
// with the owning patient's identity.
//
// The store query narrows candidates with $elemMatch but returns whole user
// documents, so every embedded appointment is re-checked here against the
// exact predicate. Removing this pass returns appointments from other days
// or other clinicians whenever a user document matches partially.
func (s *Service) FindByClinicianAndDate(ctx context.Context, clinicianID, dateStr string) ([]model.ClinicianAppointment, error) {
	if clinicianID == "" || dateStr == "" {
		return nil, apperrors.Validation("clinicianId and date are required")
	}
	clinOID, err := primitive.ObjectIDFromHex(clinicianID)
	if err != nil {
		return nil, apperrors.Validation("Invalid clinicianId")
	}
	day, err := time.ParseInLocation(dateLayout, dateStr, time.UTC)
	if err != nil {
		return nil, apperrors.Validation("Invalid date format")
	}

	start := day
	end := day.Add(24*time.Hour - time.Millisecond)

	users, err := s.users.FindByClinicianAndWindow(ctx, clinOID, start, end)
	if err != nil {
		return nil, apperrors.Internal("Server error while fetching appointments", err)
	}

	results := []model.ClinicianAppointment{}
	for _, user := range users {
		for _, appt := range user.Appointments {
			if !matchesClinician(&appt, clinOID) {
				continue
			}
			if appt.Date.Before(start) || appt.Date.After(end) {
				continue
			}
			results = append(results, model.ClinicianAppointment{
				Appointment:  appt,
				PatientName:  user.DisplayName(),
				PatientID:    user.ID,
				PatientEmail: user.Email,
			})
		}
	}
	return results, nil
}

// ComputeAnalytics aggregates the clinician's appointments over a named
// timeframe: distinct patient count and average consultation duration.
//
// The timeframe filters deliberately use different comparison bases: "day"
// compares UTC calendar-date strings while "week" and "month" compare full
// timestamps against [now-6d, now] and [now-1mo, now]. Matching clients
// depend on that exact behavior.
func (s *Service) ComputeAnalytics(ctx context.Context, clinicianID, timeframe string) (*model.Analytics, error) {
	if clinicianID == "" {
		return nil, apperrors.Validation("clinicianId is required")
	}
	clinOID, err := primitive.ObjectIDFromHex(clinicianID)
	if err != nil {
		return nil, apperrors.Validation("Invalid clinicianId")
	}

	cacheKey := fmt.Sprintf("analytics:%s:%s", clinicianID, timeframe)
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(*model.Analytics), nil
	}

	users, err := s.users.FindByClinician(ctx, clinOID)
	if err != nil {
		return nil, apperrors.Internal("Server error while computing analytics", err)
	}

	// Flatten with the same in-memory re-check: the store filter matches
	// documents, not array elements.
	var appointments []model.Appointment
	for _, user := range users {
		for _, appt := range user.Appointments {
			if matchesClinician(&appt, clinOID) {
				appointments = append(appointments, appt)
			}
		}
	}

	now := s.now().UTC()
	filtered := filterByTimeframe(appointments, timeframe, now)

	analytics := &model.Analytics{
		Patients:        countDistinctPatients(filtered),
		AvgConsultation: averageConsultation(filtered),
		Period:          periodLabel(timeframe),
	}
	s.cache.SetDefault(cacheKey, analytics)
	return analytics, nil
}

func matchesClinician(appt *model.Appointment, clinicianID primitive.ObjectID) bool {
	return appt.ClinicianID != nil && *appt.ClinicianID == clinicianID
}

func filterByTimeframe(appointments []model.Appointment, timeframe string, now time.Time) []model.Appointment {
	var keep func(model.Appointment) bool

	switch timeframe {
	case "day":
		today := now.Format(dateLayout)
		keep = func(a model.Appointment) bool {
			return a.Date.UTC().Format(dateLayout) == today
		}
	case "week":
		weekAgo := now.AddDate(0, 0, -6)
		keep = func(a model.Appointment) bool {
			return !a.Date.Before(weekAgo) && !a.Date.After(now)
		}
	case "month":
		monthAgo := now.AddDate(0, -1, 0)
		keep = func(a model.Appointment) bool {
			return !a.Date.Before(monthAgo) && !a.Date.After(now)
		}
	default:
		return appointments
	}

	var filtered []model.Appointment
	for _, a := range appointments {
		if keep(a) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

func countDistinctPatients(appointments []model.Appointment) int {
	seen := make(map[string]struct{}, len(appointments))
	for _, a := range appointments {
		seen[a.Email] = struct{}{}
	}
	return len(seen)
}

// averageConsultation averages the duration values that are present.
// Appointments without a duration drop out of both numerator and
// denominator; only an entirely duration-free set yields "N/A".
func averageConsultation(appointments []model.Appointment) string {
	var sum, count int
	for _, a := range appointments {
		if a.Duration != nil {
			sum += *a.Duration
			count++
		}
	}
	if count == 0 {
		return "N/A"
	}
	avg := int(math.Round(float64(sum) / float64(count)))
	return fmt.Sprintf("%d mins", avg)
}

func periodLabel(timeframe string) string {
	switch timeframe {
	case "day":
		return periodToday
	case "week":
		return periodWeek
	case "month":
		return periodMonth
	default:
		return periodAllTime
	}
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateLayout, s, time.UTC); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
