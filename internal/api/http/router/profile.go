package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/cliniquehq/clinique_backend/internal/api/http/handler"
	"github.com/cliniquehq/clinique_backend/pkg/authorize"
)

func (r *Router) registerProfileRoutes(
	api fiber.Router,
	h *handler.ProfileHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	profiles := api.Group("/profiles", authRequired)

	profiles.Get("/me", requirePerm(authorize.ResourceProfile, authorize.ActionRead), h.GetMe)
	profiles.Put("/me", requirePerm(authorize.ResourceProfile, authorize.ActionUpdate), h.UpdateMe)
}
