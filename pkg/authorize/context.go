package authorize

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/cliniquehq/clinique_backend/pkg/reqctx"
)

var (
	ErrNoSubjectInContext = errors.New("no subject found in context")
)

// RoleFromContext extracts the Casbin role for the authenticated account.
func RoleFromContext(ctx context.Context) (Role, error) {
	claims := reqctx.ClaimsFromContext(ctx)
	if claims == nil {
		return "", ErrNoSubjectInContext
	}

	role, ok := RoleForAccount(claims.GetRole())
	if !ok {
		return "", ErrNoSubjectInContext
	}
	return role, nil
}

// UserIDFromContext extracts the account ID from context.
// Returns uuid.Nil and error if not found.
func UserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	claims := reqctx.ClaimsFromContext(ctx)
	if claims == nil {
		return uuid.Nil, ErrNoSubjectInContext
	}

	userID := claims.GetUserID()
	if userID == uuid.Nil {
		return uuid.Nil, ErrNoSubjectInContext
	}

	return userID, nil
}
