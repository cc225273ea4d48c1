package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/cliniquehq/clinique_backend/pkg/authorize"
)

// RequirePermission enforces the role policy for one resource/action
// pair. It assumes Authenticate already ran.
func RequirePermission(auth authorize.IAuthorization, resource authorize.Resource, action authorize.Action) fiber.Handler {
	return func(c fiber.Ctx) error {
		if _, ok := ClaimsFromFiber(c); !ok {
			return reject(c, "authentication required")
		}

		role, err := authorize.RoleFromContext(c.Context())
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
		}

		if err := auth.MustEnforce(c.Context(), role, resource, action); err != nil {
			if errors.Is(err, authorize.ErrForbidden) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
			}
			return err
		}

		return c.Next()
	}
}
