package adaptor

import (
	"encoding/json"
	"net/http"

	"appointment-booking/internal/dto/request"
	"appointment-booking/internal/usecase"
	"appointment-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ScheduleHandler struct {
	service usecase.ScheduleService
	log     *zap.Logger
}

func NewScheduleHandler(service usecase.ScheduleService, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		log:     log.With(zap.String("handler", "schedule")),
	}
}

// ListDays handles GET /api/admin/schedule/days
func (h *ScheduleHandler) ListDays(w http.ResponseWriter, r *http.Request) {
	days, err := h.service.ListDays(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "list days")
		return
	}

	utils.ResponseSuccess(w, "success", days)
}

// UpdateDayStatus handles PUT /api/admin/schedule/days/{id}/status
func (h *ScheduleHandler) UpdateDayStatus(w http.ResponseWriter, r *http.Request) {
	dayID := chi.URLParam(r, "id")
	if dayID == "" {
		utils.ResponseBadRequest(w, "Day ID is required", nil)
		return
	}

	var req request.UpdateActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.UpdateDayStatus(r.Context(), dayID, &req); err != nil {
		handleServiceError(h.log, w, err, "update day status")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// CreateSlot handles POST /api/admin/schedule/slots
func (h *ScheduleHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	slot, err := h.service.CreateSlot(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create slot")
		return
	}

	utils.ResponseCreated(w, "success", slot)
}

// UpdateSlotStatus handles PUT /api/admin/schedule/slots/{id}/status
func (h *ScheduleHandler) UpdateSlotStatus(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "id")
	if slotID == "" {
		utils.ResponseBadRequest(w, "Slot ID is required", nil)
		return
	}

	var req request.UpdateActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.UpdateSlotStatus(r.Context(), slotID, &req); err != nil {
		handleServiceError(h.log, w, err, "update slot status")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ListDayTypes handles GET /api/schedule/day-types
func (h *ScheduleHandler) ListDayTypes(w http.ResponseWriter, r *http.Request) {
	dayTypes, err := h.service.ListDayTypes(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "list day types")
		return
	}

	utils.ResponseSuccess(w, "success", dayTypes)
}
