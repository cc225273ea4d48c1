package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cliniquehq/clinique_backend/internal/domain/appointment"
)

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) appointment.Repository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	var a appointment.Appointment
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appointment.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return &a, nil
}

func (r *appointmentRepository) Update(ctx context.Context, a *appointment.Appointment) error {
	if err := r.db.WithContext(ctx).Save(a).Error; err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("session_datetime desc").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list appointments by patient: %w", err)
	}
	return out, nil
}

func (r *appointmentRepository) ListByTherapist(ctx context.Context, therapistID uuid.UUID) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	err := r.db.WithContext(ctx).
		Where("therapist_id = ?", therapistID).
		Order("session_datetime desc").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list appointments by therapist: %w", err)
	}
	return out, nil
}

type noteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) appointment.NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) GetByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*appointment.ClinicalNote, error) {
	var n appointment.ClinicalNote
	err := r.db.WithContext(ctx).First(&n, "appointment_id = ?", appointmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appointment.ErrNoteNotFound
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	return &n, nil
}

func (r *noteRepository) Save(ctx context.Context, n *appointment.ClinicalNote) error {
	if err := r.db.WithContext(ctx).Save(n).Error; err != nil {
		return fmt.Errorf("save note: %w", err)
	}
	return nil
}

func (r *noteRepository) LatestScoredForPatient(ctx context.Context, patientID uuid.UUID) (*appointment.ClinicalNote, error) {
	var n appointment.ClinicalNote
	err := r.db.WithContext(ctx).
		Joins("JOIN appointments ON appointments.id = clinical_notes.appointment_id").
		Where("appointments.patient_id = ?", patientID).
		Where("clinical_notes.progress_score IS NOT NULL").
		Order("appointments.session_datetime desc").
		First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appointment.ErrNoteNotFound
		}
		return nil, fmt.Errorf("latest note for patient: %w", err)
	}
	return &n, nil
}
