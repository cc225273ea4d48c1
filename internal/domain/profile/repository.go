package profile

import (
	"context"

	"github.com/google/uuid"
)

type PatientRepository interface {
	// Create persists a new patient profile.
	Create(ctx context.Context, p *PatientProfile) error

	// GetByID retrieves a profile by primary key. Returns ErrProfileNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*PatientProfile, error)

	// GetByAccountID retrieves the profile owned by an account.
	GetByAccountID(ctx context.Context, accountID uuid.UUID) (*PatientProfile, error)

	// Update persists changes to an existing profile.
	Update(ctx context.Context, p *PatientProfile) error
}

type TherapistRepository interface {
	// Create persists a new therapist profile.
	Create(ctx context.Context, p *TherapistProfile) error

	// GetByID retrieves a profile by primary key. Returns ErrProfileNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*TherapistProfile, error)

	// GetByAccountID retrieves the profile owned by an account.
	GetByAccountID(ctx context.Context, accountID uuid.UUID) (*TherapistProfile, error)

	// List returns all therapist profiles.
	List(ctx context.Context) ([]*TherapistProfile, error)

	// Update persists changes to an existing profile.
	Update(ctx context.Context, p *TherapistProfile) error
}
