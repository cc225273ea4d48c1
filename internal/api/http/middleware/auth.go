package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/cliniquehq/clinique_backend/internal/domain/account"
	"github.com/cliniquehq/clinique_backend/pkg/reqctx"
	"github.com/cliniquehq/clinique_backend/pkg/token"
)

const LocalClaims = "auth_claims"

// Authenticate is the global authentication gate. Requests without a
// Bearer token continue unauthenticated; requests that present one must
// carry a valid token bound to a live account or they are rejected
// outright.
func Authenticate(tokens *token.Manager, accounts account.Repository) fiber.Handler {
	return func(c fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		if _, ok := ClaimsFromFiber(c); ok {
			return c.Next()
		}

		h := c.Get("Authorization")
		if h == "" {
			return c.Next()
		}
		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Next()
		}

		claims, err := tokens.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			return reject(c, "invalid or expired token")
		}

		// The subject email must still resolve to the same account the
		// token was issued for.
		acc, err := accounts.GetByEmail(c.Context(), claims.Email)
		if err != nil {
			return reject(c, "unknown account")
		}
		if acc.ID != claims.UserID {
			return reject(c, "token does not match account")
		}

		c.Locals(LocalClaims, claims)
		c.SetContext(reqctx.WithClaims(c.Context(), claims))
		return c.Next()
	}
}

// RequireAuth rejects requests that did not authenticate at the gate.
func RequireAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		if _, ok := ClaimsFromFiber(c); !ok {
			return reject(c, "authentication required")
		}
		return c.Next()
	}
}

// ClaimsFromFiber retrieves verified claims stored by Authenticate.
func ClaimsFromFiber(c fiber.Ctx) (*token.Claims, bool) {
	claims, ok := c.Locals(LocalClaims).(*token.Claims)
	return claims, ok && claims != nil
}

// ActorFromFiber builds the service-layer caller identity.
func ActorFromFiber(c fiber.Ctx) (account.Actor, bool) {
	claims, ok := ClaimsFromFiber(c)
	if !ok {
		return account.Actor{}, false
	}
	return account.Actor{
		AccountID: claims.UserID,
		Role:      account.Role(claims.Role),
	}, true
}

func reject(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
}
