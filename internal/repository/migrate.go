package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/cliniquehq/clinique_backend/internal/domain/account"
	"github.com/cliniquehq/clinique_backend/internal/domain/appointment"
	"github.com/cliniquehq/clinique_backend/internal/domain/profile"
)

// Migrate creates or updates every application table.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&account.Account{},
		&profile.PatientProfile{},
		&profile.TherapistProfile{},
		&appointment.Appointment{},
		&appointment.ClinicalNote{},
	)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
