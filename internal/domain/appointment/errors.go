package appointment

import "errors"

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrNoteNotFound        = errors.New("clinical note not found")
)
