package entity

import (
	"appointment-booking/internal/timeslot"

	"github.com/google/uuid"
)

// ScheduleSlot is one bookable time block on a weekday. TimeRange is stored
// in the wire format "HH:MM - HH:MM" and parsed into a structured range when
// the row is loaded.
type ScheduleSlot struct {
	Base
	TenantID      uuid.UUID      `db:"tenant_id"`
	DayID         uuid.UUID      `db:"day_id"`
	TimeRange     timeslot.Range `db:"time_range"`
	DayTypeID     *uuid.UUID     `db:"day_type_id"`
	AllowMultiple bool           `db:"allow_multiple"`
	IsActive      bool           `db:"is_active"`
}
