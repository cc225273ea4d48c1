package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/cliniquehq/clinique_backend/internal/api/http/middleware"
	domainappt "github.com/cliniquehq/clinique_backend/internal/domain/appointment"
	"github.com/cliniquehq/clinique_backend/internal/service/note"
)

type NoteHandler struct {
	svc note.Service
}

func NewNoteHandler(svc note.Service) *NoteHandler {
	return &NoteHandler{svc: svc}
}

func mapNoteError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domainappt.ErrAppointmentNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, note.ErrAccessDenied):
		return forbidden(c, err.Error())
	default:
		return internalError(c)
	}
}

// PUT /appointments/:id/note
func (h *NoteHandler) Write(c fiber.Ctx) error {
	actor, okAuth := middleware.ActorFromFiber(c)
	if !okAuth {
		return unauthorized(c)
	}

	appointmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	var body struct {
		Summary       string `json:"summary"`
		PrivateNotes  string `json:"private_notes"`
		ProgressScore *int   `json:"progress_score" validate:"omitempty,min=1,max=10"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	if err := validateStruct(body); err != nil {
		return badRequest(c, err.Error())
	}

	v, err := h.svc.AddOrUpdate(c.Context(), note.WriteRequest{
		AppointmentID: appointmentID,
		Summary:       body.Summary,
		PrivateNotes:  body.PrivateNotes,
		ProgressScore: body.ProgressScore,
	}, actor)
	if err != nil {
		return mapNoteError(c, err)
	}

	return ok(c, fiber.Map{
		"appointment_id":   v.AppointmentID,
		"patient_id":       v.PatientID,
		"therapist_id":     v.TherapistID,
		"session_datetime": v.SessionDateTime.Format(time.RFC3339),
		"status":           v.Status,
		"note": writtenNoteResponse{
			ID:             v.NoteID,
			Summary:        v.Summary,
			PrivateNotes:   v.PrivateNotes,
			ProgressScore:  v.ProgressScore,
			SentimentScore: v.SentimentScore,
			SentimentLabel: v.SentimentLabel,
			UpdatedAt:      v.UpdatedAt,
		},
	})
}

// writtenNoteResponse is returned only to the authoring therapist from
// the write path; it is the one place private notes appear on the wire.
type writtenNoteResponse struct {
	ID             uuid.UUID `json:"id"`
	Summary        string    `json:"summary"`
	PrivateNotes   string    `json:"private_notes"`
	ProgressScore  *int      `json:"progress_score"`
	SentimentScore *float64  `json:"sentiment_score"`
	SentimentLabel *string   `json:"sentiment_label"`
	UpdatedAt      time.Time `json:"updated_at"`
}
