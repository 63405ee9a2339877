package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
	AppointmentStatusInProgress AppointmentStatus = "in-progress"
)

type UrgencyLevel string

const (
	UrgencyRoutine UrgencyLevel = "routine"
	UrgencySoon    UrgencyLevel = "soon"
	UrgencyUrgent  UrgencyLevel = "urgent"
)

// Appointment is an embedded sub-document of its owning User. It has no
// collection of its own; identity is the _id assigned when it is appended.
// ClinicianID is a weak back-reference to a clinician User in another
// document, assigned after creation and never integrity-checked by the store.
type Appointment struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FullName     string              `bson:"fullname" json:"fullname"`
	Email        string              `bson:"email" json:"email"`
	Phone        string              `bson:"phone" json:"phone"`
	Date         time.Time           `bson:"date" json:"date"`
	Time         string              `bson:"time" json:"time"`
	Status       AppointmentStatus   `bson:"status" json:"status"`
	Symptoms     string              `bson:"symptoms,omitempty" json:"symptoms,omitempty"`
	UrgencyLevel UrgencyLevel        `bson:"urgencyLevel" json:"urgencyLevel"`
	Hospital     string              `bson:"hospital" json:"hospital"`
	Notes        string              `bson:"notes" json:"notes"`
	Duration     *int                `bson:"duration,omitempty" json:"duration,omitempty"`
	ClinicianID  *primitive.ObjectID `bson:"clinicianId,omitempty" json:"clinicianId,omitempty"`
}

// CreateAppointmentRequest is the POST /api/appointments body. The email
// identifies the owning patient; date is a calendar date (YYYY-MM-DD) or a
// full RFC 3339 timestamp.
type CreateAppointmentRequest struct {
	FullName     string `json:"fullname" binding:"required"`
	Email        string `json:"email" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Time         string `json:"time" binding:"required"`
	Status       string `json:"status,omitempty"`
	Symptoms     string `json:"symptoms,omitempty"`
	UrgencyLevel string `json:"urgencyLevel,omitempty"`
	Hospital     string `json:"hospital" binding:"required"`
	Notes        string `json:"notes,omitempty"`
	Duration     *int   `json:"duration,omitempty"`
}

// AssignClinicianRequest is the PUT /api/appointments/:id/clinician body.
type AssignClinicianRequest struct {
	ClinicianID string `json:"clinicianId"`
}

// ByDateRequest is the POST /api/appointments/by-date body.
type ByDateRequest struct {
	ClinicianID string `json:"clinicianId"`
	Date        string `json:"date"`
}

// ClinicianAppointment projects an embedded appointment together with the
// owning patient's identity for clinician-facing views.
type ClinicianAppointment struct {
	Appointment
	PatientName  string             `json:"patientName"`
	PatientID    primitive.ObjectID `json:"patientId"`
	PatientEmail string             `json:"patientEmail"`
}

// AnalyticsRequest is the POST /api/analytics body. Timeframe is one of
// day, week, month; anything else means all-time.
type AnalyticsRequest struct {
	ClinicianID string `json:"clinicianId"`
	Timeframe   string `json:"timeframe,omitempty"`
}

// Analytics is the summary returned by the aggregation engine.
type Analytics struct {
	Patients        int    `json:"patients"`
	AvgConsultation string `json:"avgConsultation"`
	Period          string `json:"period"`
}
