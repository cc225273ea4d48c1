package account

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new account. Returns ErrEmailTaken on duplicate email.
	Create(ctx context.Context, a *Account) error

	// GetByID retrieves an account by primary key. Returns ErrAccountNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// GetByEmail retrieves an account by its unique email address.
	GetByEmail(ctx context.Context, email string) (*Account, error)

	// ExistsByEmail checks for uniqueness without fetching the full record.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Update persists changes to an existing account.
	Update(ctx context.Context, a *Account) error
}
