package account

import (
	"time"

	"github.com/google/uuid"
)

// Role is the access level stored on an account.
type Role string

const (
	RolePatient   Role = "PATIENT"
	RoleTherapist Role = "THERAPIST"
	RoleAdmin     Role = "ADMIN"
)

func (r Role) IsValid() bool {
	switch r {
	case RolePatient, RoleTherapist, RoleAdmin:
		return true
	}
	return false
}

// RegistrableRoles are the roles that can be created through public
// registration. Admin accounts are provisioned out of band.
var RegistrableRoles = map[Role]struct{}{
	RolePatient:   {},
	RoleTherapist: {},
}

// Account is a login identity. Exactly one role, exactly one profile.
// The role never changes after creation.
type Account struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Email        string `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null"`
	Role         Role   `gorm:"column:role;type:varchar(20);not null;index"`
}

func (Account) TableName() string {
	return "accounts"
}

// Actor identifies the authenticated account driving a service call.
// Services never read identity from ambient state.
type Actor struct {
	AccountID uuid.UUID
	Role      Role
}
