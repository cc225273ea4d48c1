package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cliniquehq/clinique_backend/internal/domain/account"
	"github.com/cliniquehq/clinique_backend/internal/domain/profile"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type memPatients struct {
	byAccount map[uuid.UUID]*profile.PatientProfile
}

func (m *memPatients) Create(_ context.Context, p *profile.PatientProfile) error {
	m.byAccount[p.AccountID] = p
	return nil
}

func (m *memPatients) GetByID(_ context.Context, id uuid.UUID) (*profile.PatientProfile, error) {
	for _, p := range m.byAccount {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, profile.ErrProfileNotFound
}

func (m *memPatients) GetByAccountID(_ context.Context, accountID uuid.UUID) (*profile.PatientProfile, error) {
	p, ok := m.byAccount[accountID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPatients) Update(_ context.Context, p *profile.PatientProfile) error {
	cp := *p
	m.byAccount[p.AccountID] = &cp
	return nil
}

type memTherapists struct {
	byAccount map[uuid.UUID]*profile.TherapistProfile
}

func (m *memTherapists) Create(_ context.Context, p *profile.TherapistProfile) error {
	m.byAccount[p.AccountID] = p
	return nil
}

func (m *memTherapists) GetByID(_ context.Context, id uuid.UUID) (*profile.TherapistProfile, error) {
	for _, p := range m.byAccount {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, profile.ErrProfileNotFound
}

func (m *memTherapists) GetByAccountID(_ context.Context, accountID uuid.UUID) (*profile.TherapistProfile, error) {
	p, ok := m.byAccount[accountID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memTherapists) List(_ context.Context) ([]*profile.TherapistProfile, error) {
	return nil, nil
}

func (m *memTherapists) Update(_ context.Context, p *profile.TherapistProfile) error {
	cp := *p
	m.byAccount[p.AccountID] = &cp
	return nil
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func strptr(s string) *string { return &s }

func newService(t *testing.T) (Service, *memPatients, *memTherapists) {
	t.Helper()
	patients := &memPatients{byAccount: make(map[uuid.UUID]*profile.PatientProfile)}
	therapists := &memTherapists{byAccount: make(map[uuid.UUID]*profile.TherapistProfile)}
	return New(patients, therapists), patients, therapists
}

func TestGetMyProfileDispatchesOnRole(t *testing.T) {
	svc, patients, therapists := newService(t)

	patientAcc := uuid.New()
	therapistAcc := uuid.New()
	_ = patients.Create(context.Background(), &profile.PatientProfile{
		ID: uuid.New(), AccountID: patientAcc, FirstName: "Ada", LastName: "Moreno",
	})
	_ = therapists.Create(context.Background(), &profile.TherapistProfile{
		ID: uuid.New(), AccountID: therapistAcc, FirstName: "Noah", LastName: "Kim", Specialty: "CBT",
	})

	pv, err := svc.GetMyProfile(context.Background(), account.Actor{AccountID: patientAcc, Role: account.RolePatient})
	if err != nil {
		t.Fatalf("patient GetMyProfile: %v", err)
	}
	if pv.Role != "PATIENT" || pv.FirstName != "Ada" {
		t.Errorf("patient view = %+v", pv)
	}

	tv, err := svc.GetMyProfile(context.Background(), account.Actor{AccountID: therapistAcc, Role: account.RoleTherapist})
	if err != nil {
		t.Fatalf("therapist GetMyProfile: %v", err)
	}
	if tv.Role != "THERAPIST" || tv.Specialty != "CBT" {
		t.Errorf("therapist view = %+v", tv)
	}
}

func TestGetMyProfileUnsupportedRole(t *testing.T) {
	svc, _, _ := newService(t)

	for _, role := range []account.Role{account.RoleAdmin, "AUDITOR"} {
		_, err := svc.GetMyProfile(context.Background(), account.Actor{AccountID: uuid.New(), Role: role})
		if !errors.Is(err, ErrUnsupportedRole) {
			t.Errorf("role %s: error = %v, want ErrUnsupportedRole", role, err)
		}
	}
}

func TestGetMyProfileMissingRow(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.GetMyProfile(context.Background(), account.Actor{AccountID: uuid.New(), Role: account.RolePatient})
	if !errors.Is(err, profile.ErrProfileNotFound) {
		t.Errorf("error = %v, want ErrProfileNotFound", err)
	}
}

func TestUpdatePatientProfile(t *testing.T) {
	svc, patients, _ := newService(t)

	acc := uuid.New()
	dob := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
	_ = patients.Create(context.Background(), &profile.PatientProfile{
		ID: uuid.New(), AccountID: acc, FirstName: "Ada", LastName: "Moreno",
	})

	v, err := svc.UpdateMyProfile(context.Background(), UpdateRequest{
		LastName:    strptr("Moreno-Diaz"),
		DateOfBirth: &dob,
		PhoneNumber: strptr("+1 415 555 2671"),
		// therapist-only field must be ignored for patients
		Specialty: strptr("should be ignored"),
	}, account.Actor{AccountID: acc, Role: account.RolePatient})
	if err != nil {
		t.Fatalf("UpdateMyProfile: %v", err)
	}

	if v.FirstName != "Ada" {
		t.Errorf("FirstName = %q, want unchanged", v.FirstName)
	}
	if v.LastName != "Moreno-Diaz" {
		t.Errorf("LastName = %q", v.LastName)
	}
	if v.DateOfBirth == nil || !v.DateOfBirth.Equal(dob) {
		t.Errorf("DateOfBirth = %v", v.DateOfBirth)
	}
	if v.PhoneNumber != "+14155552671" {
		t.Errorf("PhoneNumber = %q, want E.164", v.PhoneNumber)
	}
	if v.Specialty != "" {
		t.Errorf("Specialty leaked into patient view: %q", v.Specialty)
	}
}

func TestUpdatePatientRejectsBadPhone(t *testing.T) {
	svc, patients, _ := newService(t)

	acc := uuid.New()
	_ = patients.Create(context.Background(), &profile.PatientProfile{ID: uuid.New(), AccountID: acc})

	_, err := svc.UpdateMyProfile(context.Background(), UpdateRequest{
		PhoneNumber: strptr("not a number"),
	}, account.Actor{AccountID: acc, Role: account.RolePatient})
	if !errors.Is(err, ErrInvalidPhone) {
		t.Errorf("error = %v, want ErrInvalidPhone", err)
	}
}

func TestUpdateTherapistProfile(t *testing.T) {
	svc, _, therapists := newService(t)

	acc := uuid.New()
	_ = therapists.Create(context.Background(), &profile.TherapistProfile{
		ID: uuid.New(), AccountID: acc, FirstName: "Noah", LastName: "Kim",
	})

	v, err := svc.UpdateMyProfile(context.Background(), UpdateRequest{
		Specialty:   strptr("Trauma therapy"),
		Credentials: strptr("PhD, LMFT"),
	}, account.Actor{AccountID: acc, Role: account.RoleTherapist})
	if err != nil {
		t.Fatalf("UpdateMyProfile: %v", err)
	}

	if v.Specialty != "Trauma therapy" || v.Credentials != "PhD, LMFT" {
		t.Errorf("view = %+v", v)
	}

	stored := therapists.byAccount[acc]
	if stored.Specialty != "Trauma therapy" {
		t.Errorf("stored Specialty = %q", stored.Specialty)
	}
}
