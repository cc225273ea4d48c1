package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cliniquehq/clinique_backend/internal/domain/profile"
)

type patientProfileRepository struct {
	db *gorm.DB
}

func NewPatientProfileRepository(db *gorm.DB) profile.PatientRepository {
	return &patientProfileRepository{db: db}
}

func (r *patientProfileRepository) Create(ctx context.Context, p *profile.PatientProfile) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueViolation(err) {
			return profile.ErrProfileExists
		}
		return fmt.Errorf("create patient profile: %w", err)
	}
	return nil
}

func (r *patientProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*profile.PatientProfile, error) {
	var p profile.PatientProfile
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get patient profile: %w", err)
	}
	return &p, nil
}

func (r *patientProfileRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*profile.PatientProfile, error) {
	var p profile.PatientProfile
	err := r.db.WithContext(ctx).First(&p, "account_id = ?", accountID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get patient profile by account: %w", err)
	}
	return &p, nil
}

func (r *patientProfileRepository) Update(ctx context.Context, p *profile.PatientProfile) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("update patient profile: %w", err)
	}
	return nil
}

type therapistProfileRepository struct {
	db *gorm.DB
}

func NewTherapistProfileRepository(db *gorm.DB) profile.TherapistRepository {
	return &therapistProfileRepository{db: db}
}

func (r *therapistProfileRepository) Create(ctx context.Context, p *profile.TherapistProfile) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueViolation(err) {
			return profile.ErrProfileExists
		}
		return fmt.Errorf("create therapist profile: %w", err)
	}
	return nil
}

func (r *therapistProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*profile.TherapistProfile, error) {
	var p profile.TherapistProfile
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get therapist profile: %w", err)
	}
	return &p, nil
}

func (r *therapistProfileRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*profile.TherapistProfile, error) {
	var p profile.TherapistProfile
	err := r.db.WithContext(ctx).First(&p, "account_id = ?", accountID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get therapist profile by account: %w", err)
	}
	return &p, nil
}

func (r *therapistProfileRepository) List(ctx context.Context) ([]*profile.TherapistProfile, error) {
	var out []*profile.TherapistProfile
	err := r.db.WithContext(ctx).
		Order("created_at asc").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list therapist profiles: %w", err)
	}
	return out, nil
}

func (r *therapistProfileRepository) Update(ctx context.Context, p *profile.TherapistProfile) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("update therapist profile: %w", err)
	}
	return nil
}
