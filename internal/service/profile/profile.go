package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cliniquehq/clinique_backend/internal/domain/account"
	"github.com/cliniquehq/clinique_backend/internal/domain/profile"
	"github.com/cliniquehq/clinique_backend/pkg/util/phone"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// View is the role-shaped profile returned to the caller. Patient and
// therapist fields are mutually exclusive.
type View struct {
	ProfileID uuid.UUID
	AccountID uuid.UUID
	Role      string
	FirstName string
	LastName  string

	// patient fields
	DateOfBirth *time.Time
	PhoneNumber string

	// therapist fields
	Specialty   string
	Credentials string
}

// UpdateRequest carries only the fields the caller wants changed.
// Fields outside the caller's role are ignored.
type UpdateRequest struct {
	FirstName   *string
	LastName    *string
	DateOfBirth *time.Time
	PhoneNumber *string
	Specialty   *string
	Credentials *string
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	GetMyProfile(ctx context.Context, actor account.Actor) (*View, error)
	UpdateMyProfile(ctx context.Context, req UpdateRequest, actor account.Actor) (*View, error)
}

// roleHandler implements profile reads and writes for one role.
type roleHandler interface {
	get(ctx context.Context, accountID uuid.UUID) (*View, error)
	update(ctx context.Context, accountID uuid.UUID, req UpdateRequest) (*View, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type profileService struct {
	handlers map[account.Role]roleHandler
}

func New(patients profile.PatientRepository, therapists profile.TherapistRepository) Service {
	return &profileService{
		handlers: map[account.Role]roleHandler{
			account.RolePatient:   &patientHandler{repo: patients},
			account.RoleTherapist: &therapistHandler{repo: therapists},
		},
	}
}

func (s *profileService) GetMyProfile(ctx context.Context, actor account.Actor) (*View, error) {
	h, ok := s.handlers[actor.Role]
	if !ok {
		return nil, ErrUnsupportedRole
	}
	return h.get(ctx, actor.AccountID)
}

func (s *profileService) UpdateMyProfile(ctx context.Context, req UpdateRequest, actor account.Actor) (*View, error) {
	h, ok := s.handlers[actor.Role]
	if !ok {
		return nil, ErrUnsupportedRole
	}
	return h.update(ctx, actor.AccountID, req)
}

// ---------------------------------------------------------------------------
// Patient handler
// ---------------------------------------------------------------------------

type patientHandler struct {
	repo profile.PatientRepository
}

func (h *patientHandler) get(ctx context.Context, accountID uuid.UUID) (*View, error) {
	p, err := h.repo.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, fmt.Errorf("load patient profile: %w", err)
	}
	return patientView(p), nil
}

func (h *patientHandler) update(ctx context.Context, accountID uuid.UUID, req UpdateRequest) (*View, error) {
	p, err := h.repo.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, fmt.Errorf("load patient profile: %w", err)
	}

	if req.FirstName != nil {
		p.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		p.LastName = *req.LastName
	}
	if req.DateOfBirth != nil {
		p.DateOfBirth = req.DateOfBirth
	}
	if req.PhoneNumber != nil {
		if *req.PhoneNumber == "" {
			p.PhoneNumber = ""
		} else {
			normalized, err := phone.Normalize(*req.PhoneNumber)
			if err != nil {
				return nil, ErrInvalidPhone
			}
			p.PhoneNumber = normalized
		}
	}

	if err := h.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update patient profile: %w", err)
	}
	return patientView(p), nil
}

func patientView(p *profile.PatientProfile) *View {
	return &View{
		ProfileID:   p.ID,
		AccountID:   p.AccountID,
		Role:        string(account.RolePatient),
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DateOfBirth: p.DateOfBirth,
		PhoneNumber: p.PhoneNumber,
	}
}

// ---------------------------------------------------------------------------
// Therapist handler
// ---------------------------------------------------------------------------

type therapistHandler struct {
	repo profile.TherapistRepository
}

func (h *therapistHandler) get(ctx context.Context, accountID uuid.UUID) (*View, error) {
	t, err := h.repo.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, fmt.Errorf("load therapist profile: %w", err)
	}
	return therapistView(t), nil
}

func (h *therapistHandler) update(ctx context.Context, accountID uuid.UUID, req UpdateRequest) (*View, error) {
	t, err := h.repo.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, fmt.Errorf("load therapist profile: %w", err)
	}

	if req.FirstName != nil {
		t.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		t.LastName = *req.LastName
	}
	if req.Specialty != nil {
		t.Specialty = *req.Specialty
	}
	if req.Credentials != nil {
		t.Credentials = *req.Credentials
	}

	if err := h.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("update therapist profile: %w", err)
	}
	return therapistView(t), nil
}

func therapistView(t *profile.TherapistProfile) *View {
	return &View{
		ProfileID:   t.ID,
		AccountID:   t.AccountID,
		Role:        string(account.RoleTherapist),
		FirstName:   t.FirstName,
		LastName:    t.LastName,
		Specialty:   t.Specialty,
		Credentials: t.Credentials,
	}
}
