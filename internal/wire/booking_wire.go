package wire

import (
	"appointment-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, handler *adaptor.BookingHandler) {
	r.Route("/bookings", func(r chi.Router) {
		// POST /api/bookings - create a booking
		r.Post("/", handler.CreateBooking)

		// GET /api/bookings - paginated tenant booking list
		r.Get("/", handler.ListBookings)

		// GET /api/bookings/{id} - booking details
		r.Get("/{id}", handler.GetBooking)

		// PUT /api/bookings/{id}/schedule - move to another date/slot
		r.Put("/{id}/schedule", handler.RescheduleBooking)

		// PUT /api/bookings/{id}/cancel - cancel with optional reason
		r.Put("/{id}/cancel", handler.CancelBooking)

		// PUT /api/bookings/{id}/status/{status} - lifecycle transition
		r.Put("/{id}/status/{status}", handler.UpdateStatus)

		// PUT /api/bookings/{id}/payment - payment status update
		r.Put("/{id}/payment", handler.UpdatePayment)
	})

	// POST /api/appointments/{id}/pricing - price a prospective booking
	r.Post("/appointments/{id}/pricing", handler.QuotePricing)
}
