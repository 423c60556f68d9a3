package adaptor

import (
	"net/http"

	"appointment-booking/internal/usecase"
	"appointment-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// optionalUUID parses an optional uuid query parameter. Empty means absent.
func optionalUUID(value string) (*uuid.UUID, bool) {
	if value == "" {
		return nil, true
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, false
	}
	return &id, true
}

// GetSlotsForDate handles GET /api/availability/{date}
func (h *AvailabilityHandler) GetSlotsForDate(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if date == "" {
		utils.ResponseBadRequest(w, "Date is required", nil)
		return
	}

	appointmentID, ok := optionalUUID(r.URL.Query().Get("appointment_id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid appointment_id", nil)
		return
	}

	availability, err := h.service.GetAvailableSlotsForDate(r.Context(), date, appointmentID)
	if err != nil {
		handleServiceError(h.log, w, err, "get slots for date")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// GetDateRange handles GET /api/availability?start=...&end=...
func (h *AvailabilityHandler) GetDateRange(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	start := query.Get("start")
	end := query.Get("end")
	if start == "" || end == "" {
		utils.ResponseBadRequest(w, "start and end are required", nil)
		return
	}

	appointmentID, ok := optionalUUID(query.Get("appointment_id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid appointment_id", nil)
		return
	}

	summaries, err := h.service.GetAvailabilityForDateRange(r.Context(), start, end, appointmentID)
	if err != nil {
		handleServiceError(h.log, w, err, "get availability range")
		return
	}

	utils.ResponseSuccess(w, "success", summaries)
}

// GetNextSlot handles GET /api/availability/next?from=...&days=...
func (h *AvailabilityHandler) GetNextSlot(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from := query.Get("from")
	if from == "" {
		utils.ResponseBadRequest(w, "from is required", nil)
		return
	}

	days := utils.ParseInt(query.Get("days"), 0)

	appointmentID, ok := optionalUUID(query.Get("appointment_id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid appointment_id", nil)
		return
	}

	next, err := h.service.NextAvailableSlot(r.Context(), from, days, appointmentID)
	if err != nil {
		handleServiceError(h.log, w, err, "get next available slot")
		return
	}

	utils.ResponseSuccess(w, "success", next)
}

// CheckSlot handles GET /api/availability/check?date=...&time_slot=...
func (h *AvailabilityHandler) CheckSlot(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	date := query.Get("date")
	timeSlot := query.Get("time_slot")
	if date == "" || timeSlot == "" {
		utils.ResponseBadRequest(w, "date and time_slot are required", nil)
		return
	}

	appointmentID, ok := optionalUUID(query.Get("appointment_id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid appointment_id", nil)
		return
	}

	check, err := h.service.CheckSlotAvailability(r.Context(), date, timeSlot, appointmentID)
	if err != nil {
		handleServiceError(h.log, w, err, "check slot availability")
		return
	}

	utils.ResponseSuccess(w, "success", check)
}
