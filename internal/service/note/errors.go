package note

import "errors"

var (
	ErrAccessDenied = errors.New("only the owning therapist may write this note")
)
