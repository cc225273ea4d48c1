package note

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cliniquehq/clinique_backend/internal/domain/account"
	"github.com/cliniquehq/clinique_backend/internal/domain/appointment"
	"github.com/cliniquehq/clinique_backend/internal/domain/profile"
	"github.com/cliniquehq/clinique_backend/pkg/mlclient"
)

// predictionTimeout bounds the best-effort sentiment call.
const predictionTimeout = 2 * time.Second

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type WriteRequest struct {
	AppointmentID uuid.UUID
	Summary       string
	PrivateNotes  string
	ProgressScore *int
}

// View is the note joined with its appointment, as returned to clients.
type View struct {
	AppointmentID   uuid.UUID
	PatientID       uuid.UUID
	TherapistID     uuid.UUID
	SessionDateTime time.Time
	Status          string

	NoteID         uuid.UUID
	Summary        string
	PrivateNotes   string
	ProgressScore  *int
	SentimentScore *float64
	SentimentLabel *string
	UpdatedAt      time.Time
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	// AddOrUpdate writes the note for an appointment, replacing any
	// earlier version. Only the owning therapist may write.
	AddOrUpdate(ctx context.Context, req WriteRequest, actor account.Actor) (*View, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type noteService struct {
	appointments appointment.Repository
	notes        appointment.NoteRepository
	therapists   profile.TherapistRepository
	predictor    mlclient.Predictor
	log          *slog.Logger
}

func New(
	appointments appointment.Repository,
	notes appointment.NoteRepository,
	therapists profile.TherapistRepository,
	predictor mlclient.Predictor,
	log *slog.Logger,
) Service {
	return &noteService{
		appointments: appointments,
		notes:        notes,
		therapists:   therapists,
		predictor:    predictor,
		log:          log.With("service", "note"),
	}
}

func (s *noteService) AddOrUpdate(ctx context.Context, req WriteRequest, actor account.Actor) (*View, error) {
	appt, err := s.appointments.GetByID(ctx, req.AppointmentID)
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

	n, err := s.notes.GetByAppointmentID(ctx, appt.ID)
	switch {
	case err == nil:
		// overwrite in place
	case errors.Is(err, appointment.ErrNoteNotFound):
		n = &appointment.ClinicalNote{AppointmentID: appt.ID}
	default:
		return nil, fmt.Errorf("load note: %w", err)
	}

	n.Summary = req.Summary
	n.PrivateNotes = req.PrivateNotes
	n.ProgressScore = req.ProgressScore
	n.SentimentScore = nil
	n.SentimentLabel = nil

	s.enrichWithSentiment(ctx, n)

	if err := s.notes.Save(ctx, n); err != nil {
		return nil, fmt.Errorf("save note: %w", err)
	}

	return &View{
		AppointmentID:   appt.ID,
		PatientID:       appt.PatientID,
		TherapistID:     appt.TherapistID,
		SessionDateTime: appt.SessionDateTime,
		Status:          string(appt.Status),
		NoteID:          n.ID,
		Summary:         n.Summary,
		PrivateNotes:    n.PrivateNotes,
		ProgressScore:   n.ProgressScore,
		SentimentScore:  n.SentimentScore,
		SentimentLabel:  n.SentimentLabel,
		UpdatedAt:       n.UpdatedAt,
	}, nil
}

// enrichWithSentiment scores a non-empty summary through the prediction
// service. The note is saved without sentiment when the call fails.
func (s *noteService) enrichWithSentiment(ctx context.Context, n *appointment.ClinicalNote) {
	if strings.TrimSpace(n.Summary) == "" {
		return
	}

	mlCtx, cancel := context.WithTimeout(ctx, predictionTimeout)
	defer cancel()

	res, err := s.predictor.AnalyzeSentiment(mlCtx, n.Summary)
	if err != nil {
		s.log.Warn("sentiment prediction failed",
			"appointment_id", n.AppointmentID, "error", err)
		return
	}

	n.SentimentScore = &res.Polarity
	label := res.SentimentLabel
	n.SentimentLabel = &label
}
