package patient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cliniquehq/clinique_backend/internal/domain/account"
	"github.com/cliniquehq/clinique_backend/internal/domain/appointment"
	"github.com/cliniquehq/clinique_backend/internal/domain/profile"
	"github.com/cliniquehq/clinique_backend/pkg/mlclient"
)

// predictionTimeout bounds the best-effort churn call.
const predictionTimeout = 2 * time.Second

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// Info is the compact patient listing entry.
type Info struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
}

// ChurnAssessment is the dropout prediction for one patient.
type ChurnAssessment struct {
	PatientID        uuid.UUID
	IsChurnRisk      bool
	ChurnProbability float64

	// History stats fed to the prediction service.
	TotalVisits        int
	DaysSinceLastVisit int
	CancellationRate   float64
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	// ListMyPatients returns the distinct patients the calling
	// therapist has appointments with.
	ListMyPatients(ctx context.Context, actor account.Actor) ([]Info, error)

	// ChurnRisk predicts whether the patient is likely to drop out of
	// care based on their appointment history. An empty history or an
	// unreachable prediction service yields a zero assessment.
	ChurnRisk(ctx context.Context, patientID uuid.UUID, actor account.Actor) (*ChurnAssessment, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type patientService struct {
	appointments appointment.Repository
	patients     profile.PatientRepository
	therapists   profile.TherapistRepository
	predictor    mlclient.Predictor
	log          *slog.Logger

	now func() time.Time
}

func New(
	appointments appointment.Repository,
	patients profile.PatientRepository,
	therapists profile.TherapistRepository,
	predictor mlclient.Predictor,
	log *slog.Logger,
) Service {
	return &patientService{
		appointments: appointments,
		patients:     patients,
		therapists:   therapists,
		predictor:    predictor,
		log:          log.With("service", "patient"),
		now:          time.Now,
	}
}

func (s *patientService) ListMyPatients(ctx context.Context, actor account.Actor) ([]Info, error) {
	t, err := s.therapists.GetByAccountID(ctx, actor.AccountID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, ErrTherapistNotFound
		}
		return nil, fmt.Errorf("load therapist: %w", err)
	}

	appts, err := s.appointments.ListByTherapist(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	seen := make(map[uuid.UUID]struct{}, len(appts))
	out := make([]Info, 0, len(appts))
	for _, a := range appts {
		if _, ok := seen[a.PatientID]; ok {
			continue
		}
		seen[a.PatientID] = struct{}{}

		p, err := s.patients.GetByID(ctx, a.PatientID)
		if err != nil {
			s.log.Warn("skip patient with missing profile",
				"patient_id", a.PatientID, "error", err)
			continue
		}
		out = append(out, Info{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName})
	}

	return out, nil
}

func (s *patientService) ChurnRisk(ctx context.Context, patientID uuid.UUID, actor account.Actor) (*ChurnAssessment, error) {
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("load patient: %w", err)
	}

	appts, err := s.appointments.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	assessment := &ChurnAssessment{PatientID: patientID}
	if len(appts) == 0 {
		return assessment, nil
	}

	stats := historyStats(appts, s.now())
	assessment.TotalVisits = stats.TotalVisits
	assessment.DaysSinceLastVisit = stats.DaysSinceLastVisit
	assessment.CancellationRate = stats.CancellationRate

	mlCtx, cancel := context.WithTimeout(ctx, predictionTimeout)
	defer cancel()

	res, err := s.predictor.ChurnRisk(mlCtx, stats)
	if err != nil {
		s.log.Warn("churn prediction failed", "patient_id", patientID, "error", err)
		return assessment, nil
	}

	assessment.IsChurnRisk = res.IsChurnRisk
	assessment.ChurnProbability = res.ChurnProbability
	return assessment, nil
}

// historyStats summarizes an appointment history for the churn model.
// days_since_last_visit counts from the latest session date, clamped to
// zero when the latest session is in the future.
func historyStats(appts []*appointment.Appointment, now time.Time) mlclient.ChurnFeatures {
	var latest time.Time
	cancelled := 0
	for _, a := range appts {
		if a.SessionDateTime.After(latest) {
			latest = a.SessionDateTime
		}
		if a.Status == appointment.StatusCancelledByPatient {
			cancelled++
		}
	}

	days := daysBetween(latest, now)
	if days < 0 {
		days = 0
	}

	return mlclient.ChurnFeatures{
		DaysSinceLastVisit: days,
		TotalVisits:        len(appts),
		CancellationRate:   float64(cancelled) / float64(len(appts)),
	}
}

// daysBetween counts whole calendar days from one date to another,
// ignoring the time of day on either side.
func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
