package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/cliniquehq/clinique_backend/internal/api/http/handler"
	"github.com/cliniquehq/clinique_backend/pkg/authorize"
)

func (r *Router) registerAppointmentRoutes(
	api fiber.Router,
	ah *handler.AppointmentHandler,
	nh *handler.NoteHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	appointments := api.Group("/appointments", authRequired)

	appointments.Post("/", requirePerm(authorize.ResourceAppointment, authorize.ActionCreate), ah.Create)

	appointments.Get("/patient/:patientId", requirePerm(authorize.ResourceAppointment, authorize.ActionList), ah.ListForPatient)
	appointments.Get("/patient/:patientId/recommendation", requirePerm(authorize.ResourceRecommendation, authorize.ActionRead), ah.GetTimingRecommendation)
	appointments.Get("/therapist/:therapistId", requirePerm(authorize.ResourceAppointment, authorize.ActionList), ah.ListForTherapist)

	a := appointments.Group("/:id")
	a.Get("/", requirePerm(authorize.ResourceAppointment, authorize.ActionRead), ah.GetByID)
	a.Put("/cancel", requirePerm(authorize.ResourceAppointment, authorize.ActionCancel), ah.Cancel)
	a.Put("/complete", requirePerm(authorize.ResourceAppointment, authorize.ActionComplete), ah.Complete)
	a.Put("/note", requirePerm(authorize.ResourceNote, authorize.ActionCreate), nh.Write)
}
