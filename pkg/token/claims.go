package token

import (
	"time"

	"github.com/google/uuid"
)

// Claims is the app-facing token payload.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   string

	// ProfileID is the profile row owned by the account,
	// uuid.Nil when none exists.
	ProfileID uuid.UUID

	Issuer string

	IssuedAt  time.Time
	ExpiresAt time.Time
	TokenID   string // jti
}

// GetUserID implements reqctx.AuthClaims.
func (c *Claims) GetUserID() uuid.UUID {
	return c.UserID
}

// GetEmail implements reqctx.AuthClaims.
func (c *Claims) GetEmail() string {
	return c.Email
}

// GetRole implements reqctx.AuthClaims.
func (c *Claims) GetRole() string {
	return c.Role
}

// IsExpired implements reqctx.AuthClaims.
func (c *Claims) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}
