package response

import (
	"appointment-booking/internal/data/entity"
)

type DayResponse struct {
	ID       string         `json:"id"`
	Key      string         `json:"key"`
	Label    string         `json:"label"`
	IsActive bool           `json:"is_active"`
	Slots    []SlotResponse `json:"slots,omitempty"`
}

type SlotResponse struct {
	ID            string  `json:"id"`
	TimeRange     string  `json:"time_range"`
	DayTypeID     *string `json:"day_type_id,omitempty"`
	AllowMultiple bool    `json:"allow_multiple"`
	IsActive      bool    `json:"is_active"`
}

type DayTypeResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	IsActive bool   `json:"is_active"`
}

type AppointmentResponse struct {
	ID                 string                   `json:"id"`
	Name               string                   `json:"name"`
	Price              float64                  `json:"price"`
	HasSubAppointments bool                     `json:"has_sub_appointments"`
	PersonCount        int                      `json:"person_count"`
	SubAppointments    []SubAppointmentResponse `json:"sub_appointments,omitempty"`
}

type SubAppointmentResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func DayToResponse(day *entity.Day, slots []*entity.ScheduleSlot) DayResponse {
	slotResponses := make([]SlotResponse, len(slots))
	for i, slot := range slots {
		slotResponses[i] = SlotToResponse(slot)
	}

	return DayResponse{
		ID:       day.ID.String(),
		Key:      day.Key,
		Label:    day.Label,
		IsActive: day.IsActive,
		Slots:    slotResponses,
	}
}

func SlotToResponse(slot *entity.ScheduleSlot) SlotResponse {
	var dayTypeID *string
	if slot.DayTypeID != nil {
		id := slot.DayTypeID.String()
		dayTypeID = &id
	}

	return SlotResponse{
		ID:            slot.ID.String(),
		TimeRange:     slot.TimeRange.String(),
		DayTypeID:     dayTypeID,
		AllowMultiple: slot.AllowMultiple,
		IsActive:      slot.IsActive,
	}
}

func AppointmentToResponse(appointment *entity.Appointment, subs []*entity.SubAppointment) AppointmentResponse {
	subResponses := make([]SubAppointmentResponse, len(subs))
	for i, sub := range subs {
		subResponses[i] = SubAppointmentResponse{
			ID:    sub.ID.String(),
			Name:  sub.Name,
			Price: sub.Price,
		}
	}

	return AppointmentResponse{
		ID:                 appointment.ID.String(),
		Name:               appointment.Name,
		Price:              appointment.Price,
		HasSubAppointments: appointment.HasSubAppointments,
		PersonCount:        appointment.PersonCount,
		SubAppointments:    subResponses,
	}
}
