package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/cliniquehq/clinique_backend/internal/domain/account"
	"github.com/cliniquehq/clinique_backend/internal/service/auth"
)

type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func mapAuthError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, account.ErrEmailTaken):
		return conflict(c, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		return unauthorized(c)
	case errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrPasswordTooShort),
		errors.Is(err, auth.ErrRoleNotAllowed):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

type authUserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ProfileID uuid.UUID `json:"profile_id,omitempty"`
}

type authResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	ExpiresIn   int64            `json:"expires_in"`
	User        authUserResponse `json:"user"`
}

func toAuthResponse(res *auth.AuthResult) authResponse {
	return authResponse{
		AccessToken: res.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   res.ExpiresIn,
		User: authUserResponse{
			ID:        res.User.ID,
			Email:     res.User.Email,
			Role:      res.User.Role,
			ProfileID: res.User.ProfileID,
		},
	}
}

// POST /auth/register
func (h *AuthHandler) Register(c fiber.Ctx) error {
	var body struct {
		Email     string `json:"email" validate:"required,email"`
		Password  string `json:"password" validate:"required,min=8"`
		Role      string `json:"role" validate:"required"`
		FirstName string `json:"first_name" validate:"required"`
		LastName  string `json:"last_name" validate:"required"`
		Specialty string `json:"specialty"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	if err := validateStruct(body); err != nil {
		return badRequest(c, err.Error())
	}

	res, err := h.svc.Register(c.Context(), auth.RegisterRequest{
		Email:     body.Email,
		Password:  body.Password,
		Role:      body.Role,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Specialty: body.Specialty,
	})
	if err != nil {
		return mapAuthError(c, err)
	}

	return created(c, toAuthResponse(res))
}

// POST /auth/login
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var body struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	if err := validateStruct(body); err != nil {
		return badRequest(c, err.Error())
	}

	res, err := h.svc.Login(c.Context(), auth.LoginRequest{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		return mapAuthError(c, err)
	}

	return ok(c, toAuthResponse(res))
}
