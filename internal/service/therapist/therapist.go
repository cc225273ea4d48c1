package therapist

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cliniquehq/clinique_backend/internal/domain/profile"
)

// Info is the public therapist directory entry. ID is the owning
// account id so clients can reference the therapist directly from
// a token.
type Info struct {
	ID        uuid.UUID
	ProfileID uuid.UUID
	FirstName string
	LastName  string
	Specialty string
}

type Service interface {
	// List returns every therapist in the clinic.
	List(ctx context.Context) ([]Info, error)
}

type therapistService struct {
	therapists profile.TherapistRepository
}

func New(therapists profile.TherapistRepository) Service {
	return &therapistService{therapists: therapists}
}

func (s *therapistService) List(ctx context.Context) ([]Info, error) {
	profiles, err := s.therapists.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list therapists: %w", err)
	}

	out := make([]Info, 0, len(profiles))
	for _, t := range profiles {
		out = append(out, Info{
			ID:        t.AccountID,
			ProfileID: t.ID,
			FirstName: t.FirstName,
			LastName:  t.LastName,
			Specialty: t.Specialty,
		})
	}
	return out, nil
}
