package appointment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new appointment.
	Create(ctx context.Context, a *Appointment) error

	// GetByID retrieves an appointment by primary key. Returns
	// ErrAppointmentNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// Update persists changes to an existing appointment.
	Update(ctx context.Context, a *Appointment) error

	// ListByPatient returns all appointments for a patient profile.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error)

	// ListByTherapist returns all appointments for a therapist profile.
	ListByTherapist(ctx context.Context, therapistID uuid.UUID) ([]*Appointment, error)
}

type NoteRepository interface {
	// GetByAppointmentID retrieves the note for an appointment. Returns
	// ErrNoteNotFound if none exists yet.
	GetByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*ClinicalNote, error)

	// Save creates or replaces the note for an appointment.
	Save(ctx context.Context, n *ClinicalNote) error

	// LatestScoredForPatient returns the note with a non-null progress
	// score from the patient's most recent session, or ErrNoteNotFound
	// when no scored note exists.
	LatestScoredForPatient(ctx context.Context, patientID uuid.UUID) (*ClinicalNote, error)
}
