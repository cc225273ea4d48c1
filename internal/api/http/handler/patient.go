package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/cliniquehq/clinique_backend/internal/api/http/middleware"
	"github.com/cliniquehq/clinique_backend/internal/service/patient"
)

type PatientHandler struct {
	svc patient.Service
}

func NewPatientHandler(svc patient.Service) *PatientHandler {
	return &PatientHandler{svc: svc}
}

func mapPatientError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, patient.ErrPatientNotFound),
		errors.Is(err, patient.ErrTherapistNotFound):
		return notFound(c, err.Error())
	default:
		return internalError(c)
	}
}

type patientInfoResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// GET /patients
func (h *PatientHandler) ListMine(c fiber.Ctx) error {
	actor, okAuth := middleware.ActorFromFiber(c)
	if !okAuth {
		return unauthorized(c)
	}

	infos, err := h.svc.ListMyPatients(c.Context(), actor)
	if err != nil {
		return mapPatientError(c, err)
	}

	out := make([]patientInfoResponse, 0, len(infos))
	for _, i := range infos {
		out = append(out, patientInfoResponse{ID: i.ID, FirstName: i.FirstName, LastName: i.LastName})
	}
	return ok(c, out)
}

// GET /patients/:id/churn-risk
func (h *PatientHandler) ChurnRisk(c fiber.Ctx) error {
	actor, okAuth := middleware.ActorFromFiber(c)
	if !okAuth {
		return unauthorized(c)
	}

	patientID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid patient id")
	}

	a, err := h.svc.ChurnRisk(c.Context(), patientID, actor)
	if err != nil {
		return mapPatientError(c, err)
	}

	return ok(c, fiber.Map{
		"patient_id":            a.PatientID,
		"is_churn_risk":         a.IsChurnRisk,
		"churn_probability":     a.ChurnProbability,
		"total_visits":          a.TotalVisits,
		"days_since_last_visit": a.DaysSinceLastVisit,
		"cancellation_rate":     a.CancellationRate,
	})
}
