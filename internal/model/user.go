package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User type constants
const (
	UserTypePatient   = "patient"
	UserTypeClinician = "clinician"
)

// User is the root document of the store. A patient's appointments live
// inline as an ordered embedded array rather than in their own collection.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	FullName         string             `bson:"fullname,omitempty" json:"fullname,omitempty"`
	Email            string             `bson:"email" json:"email"`
	Password         string             `bson:"password" json:"-"`
	Type             string             `bson:"type" json:"type"`
	Profile          *Profile           `bson:"profile,omitempty" json:"profile,omitempty"`
	MedicalHistory   *MedicalHistory    `bson:"medicalHistory,omitempty" json:"medicalHistory,omitempty"`
	ProfessionalInfo *ProfessionalInfo  `bson:"professionalInfo,omitempty" json:"professionalInfo,omitempty"`
	Appointments     []Appointment      `bson:"appointments" json:"appointments"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}

// DisplayName is the patient-facing name used in clinician views: the
// primary name, then the legacy fullname field, then the email address.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

// Profile holds optional demographic fields shared by both user types.
type Profile struct {
	Address      string     `bson:"address,omitempty" json:"address,omitempty"`
	Phone        string     `bson:"phone,omitempty" json:"phone,omitempty"`
	DateOfBirth  *time.Time `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Gender       string     `bson:"gender,omitempty" json:"gender,omitempty"`
	ProfileImage string     `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
}

// MedicalHistory is populated for patients only.
type MedicalHistory struct {
	Conditions  []string  `bson:"conditions,omitempty" json:"conditions,omitempty"`
	Allergies   []string  `bson:"allergies,omitempty" json:"allergies,omitempty"`
	Medications []string  `bson:"medications,omitempty" json:"medications,omitempty"`
	Surgeries   []Surgery `bson:"surgeries,omitempty" json:"surgeries,omitempty"`
}

type Surgery struct {
	Procedure string     `bson:"procedure,omitempty" json:"procedure,omitempty"`
	Date      *time.Time `bson:"date,omitempty" json:"date,omitempty"`
	Notes     string     `bson:"notes,omitempty" json:"notes,omitempty"`
}

// ProfessionalInfo is populated for clinicians only.
type ProfessionalInfo struct {
	Specialty     string             `bson:"specialty,omitempty" json:"specialty,omitempty"`
	LicenseNumber string             `bson:"licenseNumber,omitempty" json:"licenseNumber,omitempty"`
	Experience    int                `bson:"experience,omitempty" json:"experience,omitempty"`
	Education     []string           `bson:"education,omitempty" json:"education,omitempty"`
	Availability  []AvailabilitySlot `bson:"availability,omitempty" json:"availability,omitempty"`
}

type AvailabilitySlot struct {
	Day       string `bson:"day" json:"day"`
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
}

// RegisterRequest is the POST /api/register body.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Type     string `json:"type" binding:"required,oneof=patient clinician"`
}

// LoginRequest is the POST /api/login body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Type     string `json:"type" binding:"required"`
}

// CheckEmailRequest is the POST /api/check-email body.
type CheckEmailRequest struct {
	Email string `json:"email" binding:"required"`
}

// UserInfo is the password-free projection returned on login.
type UserInfo struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Type  string             `json:"type"`
}
