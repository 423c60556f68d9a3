package wire

import (
	"appointment-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAvailability(r chi.Router, handler *adaptor.AvailabilityHandler) {
	r.Route("/availability", func(r chi.Router) {
		// GET /api/availability?start=...&end=... - per-date summary counts
		r.Get("/", handler.GetDateRange)

		// GET /api/availability/next?from=...&days=... - forward search
		r.Get("/next", handler.GetNextSlot)

		// GET /api/availability/check?date=...&time_slot=... - single slot
		r.Get("/check", handler.CheckSlot)

		// GET /api/availability/{date} - full slot list for one date
		r.Get("/{date}", handler.GetSlotsForDate)
	})
}
