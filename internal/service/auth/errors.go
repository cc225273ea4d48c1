package auth

import "errors"

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrRoleNotAllowed     = errors.New("role cannot be registered")
	ErrInvalidCredentials = errors.New("email or password is incorrect")
)
