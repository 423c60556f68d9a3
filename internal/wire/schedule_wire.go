package wire

import (
	"appointment-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSchedule(r chi.Router, handler *adaptor.ScheduleHandler) {
	// GET /api/schedule/day-types - active slot groupings
	r.Get("/schedule/day-types", handler.ListDayTypes)

	r.Route("/admin/schedule", func(r chi.Router) {
		// GET /api/admin/schedule/days - week configuration with slots
		r.Get("/days", handler.ListDays)

		// PUT /api/admin/schedule/days/{id}/status - open or close a weekday
		r.Put("/days/{id}/status", handler.UpdateDayStatus)

		// POST /api/admin/schedule/slots - add a slot to a weekday
		r.Post("/slots", handler.CreateSlot)

		// PUT /api/admin/schedule/slots/{id}/status - enable or disable a slot
		r.Put("/slots/{id}/status", handler.UpdateSlotStatus)
	})
}
