package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cliniquehq/clinique_backend/config"
	"github.com/cliniquehq/clinique_backend/internal/domain/account"
	"github.com/cliniquehq/clinique_backend/internal/domain/profile"
	"github.com/cliniquehq/clinique_backend/pkg/email"
	"github.com/cliniquehq/clinique_backend/pkg/util/password"
)

const minPasswordLen = 8

// welcomeEmailTimeout bounds the best-effort send after registration.
const welcomeEmailTimeout = 10 * time.Second

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type RegisterRequest struct {
	Email     string
	Password  string
	Role      string // PATIENT or THERAPIST
	FirstName string
	LastName  string
	Specialty string // therapists only
}

type LoginRequest struct {
	Email    string
	Password string
}

// UserView is the account as returned to clients after auth operations.
type UserView struct {
	ID        uuid.UUID
	Email     string
	Role      string
	ProfileID uuid.UUID
}

type AuthResult struct {
	AccessToken string
	ExpiresIn   int64 // seconds until the access token expires
	User        UserView
}

// Mailer is the subset of the email client used here.
type Mailer interface {
	Send(ctx context.Context, m email.Message) error
}

// TokenIssuer is the subset of the token manager used here.
type TokenIssuer interface {
	IssueAccess(userID uuid.UUID, email, role string, profileID uuid.UUID) (string, error)
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type authService struct {
	accounts   account.Repository
	patients   profile.PatientRepository
	therapists profile.TherapistRepository
	tokens     TokenIssuer
	mailer     Mailer
	cfg        *config.Config
	log        *slog.Logger
}

func New(
	accounts account.Repository,
	patients profile.PatientRepository,
	therapists profile.TherapistRepository,
	tokens TokenIssuer,
	mailer Mailer,
	cfg *config.Config,
	log *slog.Logger,
) Service {
	return &authService{
		accounts:   accounts,
		patients:   patients,
		therapists: therapists,
		tokens:     tokens,
		mailer:     mailer,
		cfg:        cfg,
		log:        log.With("service", "auth"),
	}
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	req.Email = normalizeEmail(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(req.Password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}

	role := account.Role(strings.ToUpper(strings.TrimSpace(req.Role)))
	if _, ok := account.RegistrableRoles[role]; !ok {
		return nil, ErrRoleNotAllowed
	}

	exists, err := s.accounts.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, account.ErrEmailTaken
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acc := &account.Account{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.accounts.Create(ctx, acc); err != nil {
		// A concurrent registration can still hit the unique index.
		if errors.Is(err, account.ErrEmailTaken) {
			return nil, account.ErrEmailTaken
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	profileID, fullName, err := s.createProfile(ctx, acc, req)
	if err != nil {
		return nil, err
	}

	s.sendWelcomeEmail(acc, fullName)

	return s.issueResult(acc, profileID)
}

func (s *authService) createProfile(ctx context.Context, acc *account.Account, req RegisterRequest) (uuid.UUID, string, error) {
	switch acc.Role {
	case account.RolePatient:
		p := &profile.PatientProfile{
			AccountID: acc.ID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		}
		if err := s.patients.Create(ctx, p); err != nil {
			return uuid.Nil, "", fmt.Errorf("create patient profile: %w", err)
		}
		return p.ID, p.FullName(), nil

	case account.RoleTherapist:
		p := &profile.TherapistProfile{
			AccountID: acc.ID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Specialty: strings.TrimSpace(req.Specialty),
		}
		if err := s.therapists.Create(ctx, p); err != nil {
			return uuid.Nil, "", fmt.Errorf("create therapist profile: %w", err)
		}
		return p.ID, p.FullName(), nil
	}

	return uuid.Nil, "", ErrRoleNotAllowed
}

// sendWelcomeEmail fires the welcome message without blocking the
// request. Failures are logged and swallowed.
func (s *authService) sendWelcomeEmail(acc *account.Account, fullName string) {
	if s.mailer == nil {
		return
	}

	msg := email.BuildWelcomeEmail(email.WelcomeEmailData{
		FullName: fullName,
		Email:    acc.Email,
		Role:     string(acc.Role),
		AppName:  s.cfg.Email.AppName,
	})

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), welcomeEmailTimeout)
		defer cancel()

		if err := s.mailer.Send(ctx, msg); err != nil {
			var disabled email.ErrDisabled
			if errors.As(err, &disabled) {
				return
			}
			s.log.Warn("welcome email failed", "email", acc.Email, "error", err)
		}
	}()
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func (s *authService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	req.Email = normalizeEmail(req.Email)

	acc, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load account: %w", err)
	}

	if err := password.Verify(acc.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	profileID, err := s.lookupProfileID(ctx, acc)
	if err != nil {
		return nil, err
	}

	return s.issueResult(acc, profileID)
}

func (s *authService) lookupProfileID(ctx context.Context, acc *account.Account) (uuid.UUID, error) {
	switch acc.Role {
	case account.RolePatient:
		p, err := s.patients.GetByAccountID(ctx, acc.ID)
		if err != nil {
			if errors.Is(err, profile.ErrProfileNotFound) {
				return uuid.Nil, nil
			}
			return uuid.Nil, fmt.Errorf("load patient profile: %w", err)
		}
		return p.ID, nil

	case account.RoleTherapist:
		p, err := s.therapists.GetByAccountID(ctx, acc.ID)
		if err != nil {
			if errors.Is(err, profile.ErrProfileNotFound) {
				return uuid.Nil, nil
			}
			return uuid.Nil, fmt.Errorf("load therapist profile: %w", err)
		}
		return p.ID, nil
	}

	// Admin accounts have no profile row.
	return uuid.Nil, nil
}

func (s *authService) issueResult(acc *account.Account, profileID uuid.UUID) (*AuthResult, error) {
	tok, err := s.tokens.IssueAccess(acc.ID, acc.Email, string(acc.Role), profileID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	ttl := time.Duration(s.cfg.Authentication.JWT.AccessTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &AuthResult{
		AccessToken: tok,
		ExpiresIn:   int64(ttl.Seconds()),
		User: UserView{
			ID:        acc.ID,
			Email:     acc.Email,
			Role:      string(acc.Role),
			ProfileID: profileID,
		},
	}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
