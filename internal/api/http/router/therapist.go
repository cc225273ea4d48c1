package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/cliniquehq/clinique_backend/internal/api/http/handler"
	"github.com/cliniquehq/clinique_backend/pkg/authorize"
)

func (r *Router) registerTherapistRoutes(
	api fiber.Router,
	h *handler.TherapistHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	therapists := api.Group("/therapists", authRequired)

	therapists.Get("/", requirePerm(authorize.ResourceTherapist, authorize.ActionList), h.List)
}
