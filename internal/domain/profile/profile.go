package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PatientProfile holds the clinical-facing data for a patient account.
type PatientProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	AccountID uuid.UUID `gorm:"column:account_id;type:uuid;not null;uniqueIndex"`

	FirstName   string     `gorm:"column:first_name;type:varchar(100);not null"`
	LastName    string     `gorm:"column:last_name;type:varchar(100);not null"`
	DateOfBirth *time.Time `gorm:"column:date_of_birth"`
	PhoneNumber string     `gorm:"column:phone_number;type:varchar(20)"`
}

func (PatientProfile) TableName() string {
	return "patient_profiles"
}

func (p *PatientProfile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// TherapistProfile holds the practice data for a therapist account.
type TherapistProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	AccountID uuid.UUID `gorm:"column:account_id;type:uuid;not null;uniqueIndex"`

	FirstName   string `gorm:"column:first_name;type:varchar(100);not null"`
	LastName    string `gorm:"column:last_name;type:varchar(100);not null"`
	Specialty   string `gorm:"column:specialty;type:varchar(255)"`
	Credentials string `gorm:"column:credentials;type:varchar(255)"`
}

func (TherapistProfile) TableName() string {
	return "therapist_profiles"
}

func (p *TherapistProfile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

type UpdatePatientProfileCommand struct {
	FirstName   *string
	LastName    *string
	DateOfBirth *time.Time
	PhoneNumber *string
}

type UpdateTherapistProfileCommand struct {
	FirstName   *string
	LastName    *string
	Specialty   *string
	Credentials *string
}
