package router

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/cliniquehq/clinique_backend/config"
	"github.com/cliniquehq/clinique_backend/internal/api/http/handler"
	"github.com/cliniquehq/clinique_backend/internal/api/http/middleware"
	"github.com/cliniquehq/clinique_backend/internal/domain/account"
	"github.com/cliniquehq/clinique_backend/internal/service/appointment"
	"github.com/cliniquehq/clinique_backend/internal/service/auth"
	"github.com/cliniquehq/clinique_backend/internal/service/note"
	"github.com/cliniquehq/clinique_backend/internal/service/patient"
	"github.com/cliniquehq/clinique_backend/internal/service/profile"
	"github.com/cliniquehq/clinique_backend/internal/service/therapist"
	"github.com/cliniquehq/clinique_backend/pkg/authorize"
	"github.com/cliniquehq/clinique_backend/pkg/token"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg          *config.Config
	DB           *gorm.DB
	Auth         authorize.IAuthorization
	Tokens       *token.Manager
	Accounts     account.Repository
	AuthSvc      auth.Service
	ApptSvc      appointment.Service
	NoteSvc      note.Service
	ProfileSvc   profile.Service
	PatientSvc   patient.Service
	TherapistSvc therapist.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// Health and metrics bypass the authentication gate.
	r.registerSystemRoutes(app)

	// Authentication gate on everything below.
	app.Use(middleware.Authenticate(r.p.Tokens, r.p.Accounts))

	requireAuth := middleware.RequireAuth()
	requirePerm := func(res authorize.Resource, act authorize.Action) fiber.Handler {
		return middleware.RequirePermission(r.p.Auth, res, act)
	}

	authH := handler.NewAuthHandler(r.p.AuthSvc)
	apptH := handler.NewAppointmentHandler(r.p.ApptSvc)
	noteH := handler.NewNoteHandler(r.p.NoteSvc)
	profileH := handler.NewProfileHandler(r.p.ProfileSvc)
	patientH := handler.NewPatientHandler(r.p.PatientSvc)
	therapistH := handler.NewTherapistHandler(r.p.TherapistSvc)

	api := app.Group("/api/v1")

	r.registerAuthRoutes(api, authH)
	r.registerAppointmentRoutes(api, apptH, noteH, requireAuth, requirePerm)
	r.registerProfileRoutes(api, profileH, requireAuth, requirePerm)
	r.registerPatientRoutes(api, patientH, requireAuth, requirePerm)
	r.registerTherapistRoutes(api, therapistH, requireAuth, requirePerm)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool { return r.databaseHealthy(c.Context()) },
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}

func (r *Router) databaseHealthy(ctx context.Context) bool {
	sqlDB, err := r.p.DB.DB()
	if err != nil {
		return false
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(pingCtx) == nil
}
