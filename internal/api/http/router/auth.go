package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/cliniquehq/clinique_backend/internal/api/http/handler"
)

func (r *Router) registerAuthRoutes(api fiber.Router, h *handler.AuthHandler) {
	group := api.Group("/auth")
	group.Post("/register", h.Register)
	group.Post("/login", h.Login)
}
