package profile

import "errors"

var (
	ErrUnsupportedRole = errors.New("no profile exists for this role")
	ErrInvalidPhone    = errors.New("invalid phone number")
)
