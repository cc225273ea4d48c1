package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusScheduled            Status = "SCHEDULED"
	StatusCompleted            Status = "COMPLETED"
	StatusCancelledByPatient   Status = "CANCELLED_BY_PATIENT"
	StatusCancelledByTherapist Status = "CANCELLED_BY_THERAPIST"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelledByPatient, StatusCancelledByTherapist:
		return true
	}
	return false
}

// IsCancelled reports whether the session was cancelled by either side.
func (s Status) IsCancelled() bool {
	return s == StatusCancelledByPatient || s == StatusCancelledByTherapist
}

// Appointment is a booked session between a patient and a therapist.
type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	PatientID   uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`
	TherapistID uuid.UUID `gorm:"column:therapist_id;type:uuid;not null;index"`

	SessionDateTime time.Time `gorm:"column:session_datetime;not null"`
	Status          Status    `gorm:"column:status;type:varchar(30);not null;default:'SCHEDULED';index"`

	// CancellationRiskScore is filled in best-effort by the prediction
	// service after booking. Nil when the service was unreachable.
	CancellationRiskScore *float64 `gorm:"column:cancellation_risk_score"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// CanCancel reports whether the session may still be cancelled.
// Completed sessions are final; cancelled sessions stay cancelled.
func (a *Appointment) CanCancel() bool {
	return a.Status != StatusCompleted
}

// ClinicalNote is the therapist's record of a completed session.
// At most one note exists per appointment; writing again replaces it.
type ClinicalNote struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	AppointmentID uuid.UUID    `gorm:"column:appointment_id;type:uuid;not null;uniqueIndex"`
	Appointment   *Appointment `gorm:"foreignKey:AppointmentID;references:ID;constraint:OnDelete:CASCADE"`

	Summary       string `gorm:"column:summary;type:text"`
	PrivateNotes  string `gorm:"column:private_notes;type:text"`
	ProgressScore *int   `gorm:"column:progress_score"`

	// Sentiment fields are filled in best-effort by the prediction
	// service. Nil when the service was unreachable.
	SentimentScore *float64 `gorm:"column:sentiment_score"`
	SentimentLabel *string  `gorm:"column:sentiment_label;type:varchar(20)"`
}

func (ClinicalNote) TableName() string {
	return "clinical_notes"
}
