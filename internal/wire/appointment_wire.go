package wire

import (
	"appointment-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAppointment(r chi.Router, handler *adaptor.AppointmentHandler) {
	r.Route("/appointments", func(r chi.Router) {
		// GET /api/appointments - active appointments
		r.Get("/", handler.ListAppointments)

		// GET /api/appointments/{id} - appointment with sub-appointments
		r.Get("/{id}", handler.GetAppointment)
	})
}
