package patient

import "errors"

var (
	ErrPatientNotFound   = errors.New("patient profile not found")
	ErrTherapistNotFound = errors.New("therapist profile not found")
)
