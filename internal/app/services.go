package app

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/cliniquehq/clinique_backend/config"
	"github.com/cliniquehq/clinique_backend/internal/domain/account"
	domainappt "github.com/cliniquehq/clinique_backend/internal/domain/appointment"
	domainprofile "github.com/cliniquehq/clinique_backend/internal/domain/profile"
	"github.com/cliniquehq/clinique_backend/internal/repository"
	"github.com/cliniquehq/clinique_backend/internal/service/appointment"
	"github.com/cliniquehq/clinique_backend/internal/service/auth"
	"github.com/cliniquehq/clinique_backend/internal/service/note"
	"github.com/cliniquehq/clinique_backend/internal/service/patient"
	"github.com/cliniquehq/clinique_backend/internal/service/profile"
	"github.com/cliniquehq/clinique_backend/internal/service/therapist"
	"github.com/cliniquehq/clinique_backend/pkg/email"
	"github.com/cliniquehq/clinique_backend/pkg/mlclient"
	"github.com/cliniquehq/clinique_backend/pkg/token"
)

// ServiceModule provides all repositories and application services.
var ServiceModule = fx.Module("services",
	fx.Provide(
		repository.NewAccountRepository,
		repository.NewAppointmentRepository,
		repository.NewNoteRepository,
		repository.NewPatientProfileRepository,
		repository.NewTherapistProfileRepository,

		ProvideTokenManager,
		ProvideAuthService,
		ProvideAppointmentService,
		ProvideNoteService,
		ProvideProfileService,
		ProvidePatientService,
		ProvideTherapistService,
	),
)

func ProvideTokenManager(cfg *config.Config) (*token.Manager, error) {
	return token.NewManager(cfg)
}

func ProvideAuthService(
	accounts account.Repository,
	patients domainprofile.PatientRepository,
	therapists domainprofile.TherapistRepository,
	tokens *token.Manager,
	mailer *email.Client,
	cfg *config.Config,
) auth.Service {
	return auth.New(accounts, patients, therapists, tokens, mailer, cfg, slog.Default())
}

func ProvideAppointmentService(
	appointments domainappt.Repository,
	notes domainappt.NoteRepository,
	patients domainprofile.PatientRepository,
	therapists domainprofile.TherapistRepository,
	accounts account.Repository,
	predictor mlclient.Predictor,
	mailer *email.Client,
	cfg *config.Config,
) appointment.Service {
	return appointment.New(appointments, notes, patients, therapists, accounts, predictor, mailer, cfg, slog.Default())
}

func ProvideNoteService(
	appointments domainappt.Repository,
	notes domainappt.NoteRepository,
	therapists domainprofile.TherapistRepository,
	predictor mlclient.Predictor,
) note.Service {
	return note.New(appointments, notes, therapists, predictor, slog.Default())
}

func ProvideProfileService(
	patients domainprofile.PatientRepository,
	therapists domainprofile.TherapistRepository,
) profile.Service {
	return profile.New(patients, therapists)
}

func ProvidePatientService(
	appointments domainappt.Repository,
	patients domainprofile.PatientRepository,
	therapists domainprofile.TherapistRepository,
	predictor mlclient.Predictor,
) patient.Service {
	return patient.New(appointments, patients, therapists, predictor, slog.Default())
}

func ProvideTherapistService(therapists domainprofile.TherapistRepository) therapist.Service {
	return therapist.New(therapists)
}
