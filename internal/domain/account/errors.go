package account

import "errors"

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("an account with this email already exists")
	ErrInvalidRole     = errors.New("invalid account role")
)
