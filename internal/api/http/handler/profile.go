package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/cliniquehq/clinique_backend/internal/api/http/middleware"
	domainprofile "github.com/cliniquehq/clinique_backend/internal/domain/profile"
	"github.com/cliniquehq/clinique_backend/internal/service/profile"
)

type ProfileHandler struct {
	svc profile.Service
}

func NewProfileHandler(svc profile.Service) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func mapProfileError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domainprofile.ErrProfileNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, profile.ErrUnsupportedRole):
		return forbidden(c, err.Error())
	case errors.Is(err, profile.ErrInvalidPhone):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

type profileResponse struct {
	ProfileID uuid.UUID `json:"profile_id"`
	AccountID uuid.UUID `json:"account_id"`
	Role      string    `json:"role"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`

	DateOfBirth *string `json:"date_of_birth,omitempty"`
	PhoneNumber string  `json:"phone_number,omitempty"`

	Specialty   string `json:"specialty,omitempty"`
	Credentials string `json:"credentials,omitempty"`
}

func toProfileResponse(v *profile.View) profileResponse {
	out := profileResponse{
		ProfileID:   v.ProfileID,
		AccountID:   v.AccountID,
		Role:        v.Role,
		FirstName:   v.FirstName,
		LastName:    v.LastName,
		PhoneNumber: v.PhoneNumber,
		Specialty:   v.Specialty,
		Credentials: v.Credentials,
	}
	if v.DateOfBirth != nil {
		s := v.DateOfBirth.Format("2006-01-02")
		out.DateOfBirth = &s
	}
	return out
}

// GET /profiles/me
func (h *ProfileHandler) GetMe(c fiber.Ctx) error {
	actor, okAuth := middleware.ActorFromFiber(c)
	if !okAuth {
		return unauthorized(c)
	}

	v, err := h.svc.GetMyProfile(c.Context(), actor)
	if err != nil {
		return mapProfileError(c, err)
	}

	return ok(c, toProfileResponse(v))
}

// PUT /profiles/me
func (h *ProfileHandler) UpdateMe(c fiber.Ctx) error {
	actor, okAuth := middleware.ActorFromFiber(c)
	if !okAuth {
		return unauthorized(c)
	}

	var body struct {
		FirstName   *string `json:"first_name"`
		LastName    *string `json:"last_name"`
		DateOfBirth *string `json:"date_of_birth"` // YYYY-MM-DD
		PhoneNumber *string `json:"phone_number"`
		Specialty   *string `json:"specialty"`
		Credentials *string `json:"credentials"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid JSON body")
	}

	req := profile.UpdateRequest{
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		PhoneNumber: body.PhoneNumber,
		Specialty:   body.Specialty,
		Credentials: body.Credentials,
	}
	if body.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *body.DateOfBirth)
		if err != nil {
			return badRequest(c, "date_of_birth must be YYYY-MM-DD")
		}
		req.DateOfBirth = &dob
	}

	v, err := h.svc.UpdateMyProfile(c.Context(), req, actor)
	if err != nil {
		return mapProfileError(c, err)
	}

	return ok(c, toProfileResponse(v))
}
