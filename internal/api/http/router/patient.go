package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/cliniquehq/clinique_backend/internal/api/http/handler"
	"github.com/cliniquehq/clinique_backend/pkg/authorize"
)

func (r *Router) registerPatientRoutes(
	api fiber.Router,
	h *handler.PatientHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	patients := api.Group("/patients", authRequired)

	patients.Get("/", requirePerm(authorize.ResourcePatient, authorize.ActionList), h.ListMine)
	patients.Get("/:id/churn-risk", requirePerm(authorize.ResourcePatient, authorize.ActionRead), h.ChurnRisk)
}
