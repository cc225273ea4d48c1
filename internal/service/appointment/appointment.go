package appointment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cliniquehq/clinique_backend/config"
	"github.com/cliniquehq/clinique_backend/internal/domain/account"
	"github.com/cliniquehq/clinique_backend/internal/domain/appointment"
	"github.com/cliniquehq/clinique_backend/internal/domain/profile"
	"github.com/cliniquehq/clinique_backend/pkg/email"
	"github.com/cliniquehq/clinique_backend/pkg/mlclient"
)

const (
	// predictionTimeout bounds every best-effort call to the
	// prediction service.
	predictionTimeout = 2 * time.Second

	// defaultRecommendedDays is returned when no scored note exists or
	// the prediction service is unreachable.
	defaultRecommendedDays = 7

	confirmationEmailTimeout = 10 * time.Second
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreateRequest struct {
	PatientID       uuid.UUID
	TherapistID     uuid.UUID
	SessionDateTime time.Time
}

// View is the appointment as returned to clients.
type View struct {
	ID                    uuid.UUID
	PatientID             uuid.UUID
	TherapistID           uuid.UUID
	SessionDateTime       time.Time
	Status                string
	CancellationRiskScore *float64
	CreatedAt             time.Time
	Note                  *NoteView
}

// NoteView is the clinical note attached to an appointment view.
// Private notes never travel with appointments; only the note write
// path returns them to the authoring therapist.
type NoteView struct {
	ID             uuid.UUID
	Summary        string
	ProgressScore  *int
	SentimentScore *float64
	SentimentLabel *string
	UpdatedAt      time.Time
}

type TimingRecommendation struct {
	PatientID       uuid.UUID
	RecommendedDays int
	// BasedOnScore is the progress score fed to the prediction
	// service, nil when the default was used.
	BasedOnScore *int
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Create(ctx context.Context, req CreateRequest, actor account.Actor) (*View, error)
	GetByID(ctx context.Context, id uuid.UUID, actor account.Actor) (*View, error)
	ListForPatient(ctx context.Context, patientID uuid.UUID, actor account.Actor) ([]*View, error)
	ListForTherapist(ctx context.Context, therapistID uuid.UUID, actor account.Actor) ([]*View, error)
	Cancel(ctx context.Context, id uuid.UUID, actor account.Actor) (*View, error)
	Complete(ctx context.Context, id uuid.UUID, actor account.Actor) (*View, error)
	GetTimingRecommendation(ctx context.Context, patientID uuid.UUID, actor account.Actor) (*TimingRecommendation, error)
}

// Mailer is the subset of the email client used here.
type Mailer interface {
	Send(ctx context.Context, m email.Message) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type appointmentService struct {
	appointments appointment.Repository
	notes        appointment.NoteRepository
	patients     profile.PatientRepository
	therapists   profile.TherapistRepository
	accounts     account.Repository
	predictor    mlclient.Predictor
	mailer       Mailer
	cfg          *config.Config
	log          *slog.Logger

	now func() time.Time
}

func New(
	appointments appointment.Repository,
	notes appointment.NoteRepository,
	patients profile.PatientRepository,
	therapists profile.TherapistRepository,
	accounts account.Repository,
	predictor mlclient.Predictor,
	mailer Mailer,
	cfg *config.Config,
	log *slog.Logger,
) Service {
	return &appointmentService{
		appointments: appointments,
		notes:        notes,
		patients:     patients,
		therapists:   therapists,
		accounts:     accounts,
		predictor:    predictor,
		mailer:       mailer,
		cfg:          cfg,
		log:          log.With("service", "appointment"),
		now:          time.Now,
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func (s *appointmentService) Create(ctx context.Context, req CreateRequest, actor account.Actor) (*View, error) {
	patient, err := s.patients.GetByID(ctx, req.PatientID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("load patient: %w", err)
	}

	therapist, err := s.therapists.GetByID(ctx, req.TherapistID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, ErrTherapistNotFound
		}
		return nil, fmt.Errorf("load therapist: %w", err)
	}

	appt := &appointment.Appointment{
		PatientID:       patient.ID,
		TherapistID:     therapist.ID,
		SessionDateTime: req.SessionDateTime,
		Status:          appointment.StatusScheduled,
		CreatedAt:       s.now(),
	}
	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.enrichWithRiskScore(ctx, appt)
	s.sendConfirmationEmail(patient, therapist, appt)

	return s.toView(ctx, appt), nil
}

// enrichWithRiskScore asks the prediction service to score the new
// booking. Any failure is logged and the appointment keeps a nil score.
func (s *appointmentService) enrichWithRiskScore(ctx context.Context, appt *appointment.Appointment) {
	mlCtx, cancel := context.WithTimeout(ctx, predictionTimeout)
	defer cancel()

	score, err := s.predictor.CancellationRisk(mlCtx, riskFeatures(appt.CreatedAt, appt.SessionDateTime))
	if err != nil {
		s.log.Warn("cancellation risk prediction failed",
			"appointment_id", appt.ID, "error", err)
		return
	}

	appt.CancellationRiskScore = &score
	if err := s.appointments.Update(ctx, appt); err != nil {
		s.log.Warn("persist risk score failed",
			"appointment_id", appt.ID, "error", err)
		appt.CancellationRiskScore = nil
	}
}

// riskFeatures derives prediction features from the booking. Lead time
// counts calendar days between the booking date and the session date,
// not 24-hour windows. Weekday numbering starts at Sunday=0.
func riskFeatures(createdAt, session time.Time) mlclient.RiskFeatures {
	lead := daysBetween(createdAt, session)
	if lead < 0 {
		lead = 0
	}

	return mlclient.RiskFeatures{
		LeadTimeDays: lead,
		DayOfWeek:    int(session.Weekday()),
		HourOfDay:    session.Hour(),
	}
}

// daysBetween counts whole calendar days from one date to another,
// ignoring the time of day on either side.
func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

func (s *appointmentService) sendConfirmationEmail(patient *profile.PatientProfile, therapist *profile.TherapistProfile, appt *appointment.Appointment) {
	if s.mailer == nil || s.accounts == nil {
		return
	}

	patientID := patient.ID
	accountID := patient.AccountID
	data := email.AppointmentEmailData{
		PatientName:   patient.FullName(),
		TherapistName: therapist.FullName(),
		SessionDate:   appt.SessionDateTime,
		AppName:       s.cfg.Email.AppName,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), confirmationEmailTimeout)
		defer cancel()

		acc, err := s.accounts.GetByID(ctx, accountID)
		if err != nil {
			s.log.Warn("confirmation email skipped", "patient_id", patientID, "error", err)
			return
		}
		data.PatientEmail = acc.Email

		if err := s.mailer.Send(ctx, email.BuildAppointmentScheduledEmail(data)); err != nil {
			var disabled email.ErrDisabled
			if errors.As(err, &disabled) {
				return
			}
			s.log.Warn("confirmation email failed", "patient_id", patientID, "error", err)
		}
	}()
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

func (s *appointmentService) GetByID(ctx context.Context, id uuid.UUID, actor account.Actor) (*View, error) {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointment.ErrAppointmentNotFound) {
			return nil, appointment.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	switch actor.Role {
	case account.RoleAdmin:
		// unrestricted
	case account.RolePatient:
		p, err := s.patients.GetByAccountID(ctx, actor.AccountID)
		if err != nil || p.ID != appt.PatientID {
			return nil, ErrAccessDenied
		}
	case account.RoleTherapist:
		t, err := s.therapists.GetByAccountID(ctx, actor.AccountID)
		if err != nil || t.ID != appt.TherapistID {
			return nil, ErrAccessDenied
		}
	default:
		return nil, ErrAccessDenied
	}

	return s.toView(ctx, appt), nil
}

func (s *appointmentService) ListForPatient(ctx context.Context, patientID uuid.UUID, actor account.Actor) ([]*View, error) {
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("load patient: %w", err)
	}

	// Only patients are checked against the requested profile;
	// therapists and admins may read any patient's history.
	if actor.Role == account.RolePatient {
		p, err := s.patients.GetByAccountID(ctx, actor.AccountID)
		if err != nil || p.ID != patientID {
			return nil, ErrAccessDenied
		}
	}

	appts, err := s.appointments.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	return s.toViews(ctx, appts), nil
}

func (s *appointmentService) ListForTherapist(ctx context.Context, therapistID uuid.UUID, actor account.Actor) ([]*View, error) {
	if _, err := s.therapists.GetByID(ctx, therapistID); err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, ErrTherapistNotFound
		}
		return nil, fmt.Errorf("load therapist: %w", err)
	}

	switch actor.Role {
	case account.RoleAdmin:
		// unrestricted
	case account.RoleTherapist:
		t, err := s.therapists.GetByAccountID(ctx, actor.AccountID)
		if err != nil || t.ID != therapistID {
			return nil, ErrAccessDenied
		}
	default:
		return nil, ErrAccessDenied
	}

	appts, err := s.appointments.ListByTherapist(ctx, therapistID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	return s.toViews(ctx, appts), nil
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

func (s *appointmentService) Cancel(ctx context.Context, id uuid.UUID, actor account.Actor) (*View, error) {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointment.ErrAppointmentNotFound) {
			return nil, appointment.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	p, err := s.patients.GetByAccountID(ctx, actor.AccountID)
	if err != nil || p.ID != appt.PatientID {
		return nil, ErrAccessDenied
	}

	if !appt.CanCancel() {
		return nil, ErrAlreadyCompleted
	}

	appt.Status = appointment.StatusCancelledByPatient
	if err := s.appointments.Update(ctx, appt); err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}

	return s.toView(ctx, appt), nil
}

func (s *appointmentService) Complete(ctx context.Context, id uuid.UUID, actor account.Actor) (*View, error) {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointment.ErrAppointmentNotFound) {
			return nil, appointment.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	t, err := s.therapists.GetByAccountID(ctx, actor.AccountID)
	if err != nil || t.ID != appt.TherapistID {
		return nil, ErrAccessDenied
	}

	// No current-state guard: completing a cancelled session simply
	// overwrites its status.
	appt.Status = appointment.StatusCompleted
	if err := s.appointments.Update(ctx, appt); err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}

	return s.toView(ctx, appt), nil
}

// ---------------------------------------------------------------------------
// Timing recommendation
// ---------------------------------------------------------------------------

func (s *appointmentService) GetTimingRecommendation(ctx context.Context, patientID uuid.UUID, actor account.Actor) (*TimingRecommendation, error) {
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("load patient: %w", err)
	}

	note, err := s.notes.LatestScoredForPatient(ctx, patientID)
	if err != nil {
		if errors.Is(err, appointment.ErrNoteNotFound) {
			return &TimingRecommendation{
				PatientID:       patientID,
				RecommendedDays: defaultRecommendedDays,
			}, nil
		}
		return nil, fmt.Errorf("load latest scored note: %w", err)
	}

	score := *note.ProgressScore

	mlCtx, cancel := context.WithTimeout(ctx, predictionTimeout)
	defer cancel()

	days, err := s.predictor.RecommendTiming(mlCtx, score)
	if err != nil {
		s.log.Warn("timing prediction failed", "patient_id", patientID, "error", err)
		days = defaultRecommendedDays
	}

	return &TimingRecommendation{
		PatientID:       patientID,
		RecommendedDays: days,
		BasedOnScore:    &score,
	}, nil
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

func (s *appointmentService) toView(ctx context.Context, appt *appointment.Appointment) *View {
	v := &View{
		ID:                    appt.ID,
		PatientID:             appt.PatientID,
		TherapistID:           appt.TherapistID,
		SessionDateTime:       appt.SessionDateTime,
		Status:                string(appt.Status),
		CancellationRiskScore: appt.CancellationRiskScore,
		CreatedAt:             appt.CreatedAt,
	}

	if s.notes != nil {
		if n, err := s.notes.GetByAppointmentID(ctx, appt.ID); err == nil {
			v.Note = &NoteView{
				ID:             n.ID,
				Summary:        n.Summary,
				ProgressScore:  n.ProgressScore,
				SentimentScore: n.SentimentScore,
				SentimentLabel: n.SentimentLabel,
				UpdatedAt:      n.UpdatedAt,
			}
		}
	}

	return v
}

func (s *appointmentService) toViews(ctx context.Context, appts []*appointment.Appointment) []*View {
	out := make([]*View, 0, len(appts))
	for _, a := range appts {
		out = append(out, s.toView(ctx, a))
	}
	return out
}
