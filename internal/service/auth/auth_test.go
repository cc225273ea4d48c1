package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/cliniquehq/clinique_backend/config"
	"github.com/cliniquehq/clinique_backend/internal/domain/account"
	"github.com/cliniquehq/clinique_backend/internal/domain/profile"
	"github.com/cliniquehq/clinique_backend/pkg/email"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type memAccounts struct {
	byEmail map[string]*account.Account
}

func (m *memAccounts) Create(_ context.Context, a *account.Account) error {
	if _, ok := m.byEmail[a.Email]; ok {
		return account.ErrEmailTaken
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	cp := *a
	m.byEmail[a.Email] = &cp
	return nil
}

func (m *memAccounts) GetByID(_ context.Context, id uuid.UUID) (*account.Account, error) {
	for _, a := range m.byEmail {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, account.ErrAccountNotFound
}

func (m *memAccounts) GetByEmail(_ context.Context, e string) (*account.Account, error) {
	a, ok := m.byEmail[e]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memAccounts) ExistsByEmail(_ context.Context, e string) (bool, error) {
	_, ok := m.byEmail[e]
	return ok, nil
}

func (m *memAccounts) Update(_ context.Context, a *account.Account) error {
	cp := *a
	m.byEmail[a.Email] = &cp
	return nil
}

type memPatients struct {
	byAccount map[uuid.UUID]*profile.PatientProfile
}

func (m *memPatients) Create(_ context.Context, p *profile.PatientProfile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
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
	return p, nil
}

func (m *memPatients) Update(_ context.Context, _ *profile.PatientProfile) error {
	return nil
}

type memTherapists struct {
	byAccount map[uuid.UUID]*profile.TherapistProfile
}

func (m *memTherapists) Create(_ context.Context, p *profile.TherapistProfile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
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
	return p, nil
}

func (m *memTherapists) List(_ context.Context) ([]*profile.TherapistProfile, error) {
	return nil, nil
}

func (m *memTherapists) Update(_ context.Context, _ *profile.TherapistProfile) error {
	return nil
}

type fakeIssuer struct{}

func (fakeIssuer) IssueAccess(userID uuid.UUID, email, role string, profileID uuid.UUID) (string, error) {
	return strings.Join([]string{userID.String(), email, role, profileID.String()}, "|"), nil
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []email.Message
	wg   sync.WaitGroup
}

func (m *recordingMailer) Send(_ context.Context, msg email.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	m.wg.Done()
	return nil
}

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

func newService(t *testing.T, mailer Mailer) (Service, *memAccounts, *memPatients, *memTherapists) {
	t.Helper()

	accounts := &memAccounts{byEmail: make(map[string]*account.Account)}
	patients := &memPatients{byAccount: make(map[uuid.UUID]*profile.PatientProfile)}
	therapists := &memTherapists{byAccount: make(map[uuid.UUID]*profile.TherapistProfile)}

	cfg := &config.Config{}
	cfg.Authentication.JWT.AccessTTLMinutes = 60

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := New(accounts, patients, therapists, fakeIssuer{}, mailer, cfg, log)
	return svc, accounts, patients, therapists
}

func validPatientRequest() RegisterRequest {
	return RegisterRequest{
		Email:     "ada@clinique.test",
		Password:  "s3cret-password",
		Role:      "PATIENT",
		FirstName: "Ada",
		LastName:  "Moreno",
	}
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestRegisterPatient(t *testing.T) {
	svc, accounts, patients, _ := newService(t, nil)

	res, err := svc.Register(context.Background(), validPatientRequest())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if res.AccessToken == "" {
		t.Error("missing access token")
	}
	if res.User.Role != "PATIENT" {
		t.Errorf("Role = %q", res.User.Role)
	}
	if res.User.ProfileID == uuid.Nil {
		t.Error("missing profile id")
	}
	if res.ExpiresIn != 3600 {
		t.Errorf("ExpiresIn = %d, want 3600", res.ExpiresIn)
	}

	acc, err := accounts.GetByEmail(context.Background(), "ada@clinique.test")
	if err != nil {
		t.Fatalf("stored account: %v", err)
	}
	if acc.PasswordHash == "s3cret-password" || acc.PasswordHash == "" {
		t.Error("password stored unhashed")
	}

	p, err := patients.GetByAccountID(context.Background(), acc.ID)
	if err != nil {
		t.Fatalf("stored profile: %v", err)
	}
	if p.FirstName != "Ada" || p.LastName != "Moreno" {
		t.Errorf("profile = %+v", p)
	}
}

func TestRegisterTherapistWithSpecialty(t *testing.T) {
	svc, _, _, therapists := newService(t, nil)

	res, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "noah@clinique.test",
		Password:  "s3cret-password",
		Role:      "therapist", // case-insensitive
		FirstName: "Noah",
		LastName:  "Kim",
		Specialty: "CBT",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	p, ok := therapists.byAccount[res.User.ID]
	if !ok {
		t.Fatal("therapist profile not created")
	}
	if p.Specialty != "CBT" {
		t.Errorf("Specialty = %q", p.Specialty)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _, _ := newService(t, nil)

	tests := []struct {
		name    string
		mutate  func(*RegisterRequest)
		wantErr error
	}{
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }, ErrInvalidEmail},
		{"short password", func(r *RegisterRequest) { r.Password = "short" }, ErrPasswordTooShort},
		{"admin role", func(r *RegisterRequest) { r.Role = "ADMIN" }, ErrRoleNotAllowed},
		{"unknown role", func(r *RegisterRequest) { r.Role = "SUPERUSER" }, ErrRoleNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validPatientRequest()
			tt.mutate(&req)
			if _, err := svc.Register(context.Background(), req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Register error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newService(t, nil)

	if _, err := svc.Register(context.Background(), validPatientRequest()); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	// Same address with different case still conflicts.
	req := validPatientRequest()
	req.Email = "ADA@clinique.test"
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, account.ErrEmailTaken) {
		t.Errorf("Register error = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterSendsWelcomeEmail(t *testing.T) {
	mailer := &recordingMailer{}
	mailer.wg.Add(1)
	svc, _, _, _ := newService(t, mailer)

	if _, err := svc.Register(context.Background(), validPatientRequest()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	mailer.wg.Wait()

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	if len(mailer.sent) != 1 {
		t.Fatalf("emails sent = %d, want 1", len(mailer.sent))
	}
	if got := mailer.sent[0].To; len(got) != 1 || got[0] != "ada@clinique.test" {
		t.Errorf("To = %v", got)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestLogin(t *testing.T) {
	svc, _, _, _ := newService(t, nil)

	reg, err := svc.Register(context.Background(), validPatientRequest())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	res, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Ada@Clinique.test",
		Password: "s3cret-password",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if res.User.ID != reg.User.ID {
		t.Errorf("User.ID = %s, want %s", res.User.ID, reg.User.ID)
	}
	if res.User.ProfileID != reg.User.ProfileID {
		t.Errorf("ProfileID = %s, want %s", res.User.ProfileID, reg.User.ProfileID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _, _ := newService(t, nil)

	if _, err := svc.Register(context.Background(), validPatientRequest()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@clinique.test", "s3cret-password"},
		{"wrong password", "ada@clinique.test", "wrong-password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), LoginRequest{Email: tt.email, Password: tt.password})
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}
