package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/cliniquehq/clinique_backend/internal/api/http/middleware"
	domainappt "github.com/cliniquehq/clinique_backend/internal/domain/appointment"
	"github.com/cliniquehq/clinique_backend/internal/service/appointment"
)

type AppointmentHandler struct {
	svc appointment.Service
}

func NewAppointmentHandler(svc appointment.Service) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

func mapAppointmentError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domainappt.ErrAppointmentNotFound),
		errors.Is(err, appointment.ErrPatientNotFound),
		errors.Is(err, appointment.ErrTherapistNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, appointment.ErrAccessDenied):
		return forbidden(c, err.Error())
	case errors.Is(err, appointment.ErrAlreadyCompleted):
		return conflict(c, err.Error())
	default:
		return internalError(c)
	}
}

// noteResponse is the note as seen alongside an appointment. Private
// notes are deliberately absent; see the note write handler.
type noteResponse struct {
	ID             uuid.UUID `json:"id"`
	Summary        string    `json:"summary"`
	ProgressScore  *int      `json:"progress_score"`
	SentimentScore *float64  `json:"sentiment_score"`
	SentimentLabel *string   `json:"sentiment_label"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type appointmentResponse struct {
	ID                    uuid.UUID     `json:"id"`
	PatientID             uuid.UUID     `json:"patient_id"`
	TherapistID           uuid.UUID     `json:"therapist_id"`
	SessionDateTime       time.Time     `json:"session_datetime"`
	Status                string        `json:"status"`
	CancellationRiskScore *float64      `json:"cancellation_risk_score"`
	CreatedAt             time.Time     `json:"created_at"`
	Note                  *noteResponse `json:"note,omitempty"`
}

func toAppointmentResponse(v *appointment.View) appointmentResponse {
	out := appointmentResponse{
		ID:                    v.ID,
		PatientID:             v.PatientID,
		TherapistID:           v.TherapistID,
		SessionDateTime:       v.SessionDateTime,
		Status:                v.Status,
		CancellationRiskScore: v.CancellationRiskScore,
		CreatedAt:             v.CreatedAt,
	}
	if v.Note != nil {
		out.Note = &noteResponse{
			ID:             v.Note.ID,
			Summary:        v.Note.Summary,
			ProgressScore:  v.Note.ProgressScore,
			SentimentScore: v.Note.SentimentScore,
			SentimentLabel: v.Note.SentimentLabel,
			UpdatedAt:      v.Note.UpdatedAt,
		}
	}
	return out
}

func toAppointmentResponses(views []*appointment.View) []appointmentResponse {
	out := make([]appointmentResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toAppointmentResponse(v))
	}
	return out
}

// POST /appointments
func (h *AppointmentHandler) Create(c fiber.Ctx) error {
	actor, okAuth := middleware.ActorFromFiber(c)
	if !okAuth {
		return unauthorized(c)
	}

	var body struct {
		PatientID       uuid.UUID `json:"patient_id" validate:"required"`
		TherapistID     uuid.UUID `json:"therapist_id" validate:"required"`
		SessionDateTime time.Time `json:"session_datetime" validate:"required,future"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	if err := validateStruct(body); err != nil {
		return badRequest(c, err.Error())
	}

	v, err := h.svc.Create(c.Context(), appointment.CreateRequest{
		PatientID:       body.PatientID,
		TherapistID:     body.TherapistID,
		SessionDateTime: body.SessionDateTime,
	}, actor)
	if err != nil {
		return mapAppointmentError(c, err)
	}

	return created(c, toAppointmentResponse(v))
}

// GET /appointments/:id
func (h *AppointmentHandler) GetByID(c fiber.Ctx) error {
	actor, okAuth := middleware.ActorFromFiber(c)
	if !okAuth {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	v, err := h.svc.GetByID(c.Context(), id, actor)
	if err != nil {
		return mapAppointmentError(c, err)
	}

	return ok(c, toAppointmentResponse(v))
}

// GET /appointments/patient/:patientId
func (h *AppointmentHandler) ListForPatient(c fiber.Ctx) error {
	actor, okAuth := middleware.ActorFromFiber(c)
	if !okAuth {
		return unauthorized(c)
	}

	patientID, err := uuid.Parse(c.Params("patientId"))
	if err != nil {
		return badRequest(c, "invalid patient id")
	}

	views, err := h.svc.ListForPatient(c.Context(), patientID, actor)
	if err != nil {
		return mapAppointmentError(c, err)
	}

	return ok(c, toAppointmentResponses(views))
}

// GET /appointments/therapist/:therapistId
func (h *AppointmentHandler) ListForTherapist(c fiber.Ctx) error {
	actor, okAuth := middleware.ActorFromFiber(c)
	if !okAuth {
		return unauthorized(c)
	}

	therapistID, err := uuid.Parse(c.Params("therapistId"))
	if err != nil {
		return badRequest(c, "invalid therapist id")
	}

	views, err := h.svc.ListForTherapist(c.Context(), therapistID, actor)
	if err != nil {
		return mapAppointmentError(c, err)
	}

	return ok(c, toAppointmentResponses(views))
}

// PUT /appointments/:id/cancel
func (h *AppointmentHandler) Cancel(c fiber.Ctx) error {
	actor, okAuth := middleware.ActorFromFiber(c)
	if !okAuth {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	v, err := h.svc.Cancel(c.Context(), id, actor)
	if err != nil {
		return mapAppointmentError(c, err)
	}

	return ok(c, toAppointmentResponse(v))
}

// PUT /appointments/:id/complete
func (h *AppointmentHandler) Complete(c fiber.Ctx) error {
	actor, okAuth := middleware.ActorFromFiber(c)
	if !okAuth {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	v, err := h.svc.Complete(c.Context(), id, actor)
	if err != nil {
		return mapAppointmentError(c, err)
	}

	return ok(c, toAppointmentResponse(v))
}

// GET /appointments/patient/:patientId/recommendation
func (h *AppointmentHandler) GetTimingRecommendation(c fiber.Ctx) error {
	actor, okAuth := middleware.ActorFromFiber(c)
	if !okAuth {
		return unauthorized(c)
	}

	patientID, err := uuid.Parse(c.Params("patientId"))
	if err != nil {
		return badRequest(c, "invalid patient id")
	}

	rec, err := h.svc.GetTimingRecommendation(c.Context(), patientID, actor)
	if err != nil {
		return mapAppointmentError(c, err)
	}

	return ok(c, fiber.Map{
		"patient_id":       rec.PatientID,
		"recommended_days": rec.RecommendedDays,
		"based_on_score":   rec.BasedOnScore,
	})
}
