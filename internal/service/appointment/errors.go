package appointment

import "errors"

var (
	ErrPatientNotFound   = errors.New("patient profile not found")
	ErrTherapistNotFound = errors.New("therapist profile not found")
	ErrAccessDenied      = errors.New("not allowed to access this appointment")
	ErrAlreadyCompleted  = errors.New("appointment is already completed")
)
