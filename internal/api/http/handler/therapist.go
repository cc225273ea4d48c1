package handler

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/cliniquehq/clinique_backend/internal/service/therapist"
)

type TherapistHandler struct {
	svc therapist.Service
}

func NewTherapistHandler(svc therapist.Service) *TherapistHandler {
	return &TherapistHandler{svc: svc}
}

type therapistInfoResponse struct {
	ID        uuid.UUID `json:"id"`
	ProfileID uuid.UUID `json:"profile_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Specialty string    `json:"specialty,omitempty"`
}

// GET /therapists
func (h *TherapistHandler) List(c fiber.Ctx) error {
	infos, err := h.svc.List(c.Context())
	if err != nil {
		return internalError(c)
	}

	out := make([]therapistInfoResponse, 0, len(infos))
	for _, i := range infos {
		out = append(out, therapistInfoResponse{
			ID:        i.ID,
			ProfileID: i.ProfileID,
			FirstName: i.FirstName,
			LastName:  i.LastName,
			Specialty: i.Specialty,
		})
	}
	return ok(c, out)
}
