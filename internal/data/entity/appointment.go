package entity

import (
	"github.com/google/uuid"
)

// Appointment is a bookable service with a base price and optional
// sub-appointment add-ons.
type Appointment struct {
	Base
	TenantID           uuid.UUID  `db:"tenant_id"`
	Name               string     `db:"name"`
	Price              float64    `db:"price"`
	TaxID              *uuid.UUID `db:"tax_id"`
	HasSubAppointments bool       `db:"has_sub_appointments"`
	PersonCount        int        `db:"person_count"`
	IsActive           bool       `db:"is_active"`
}

// SubAppointment is an add-on service priced on top of its parent.
type SubAppointment struct {
	Base
	TenantID      uuid.UUID `db:"tenant_id"`
	AppointmentID uuid.UUID `db:"appointment_id"`
	Name          string    `db:"name"`
	Price         float64   `db:"price"`
	IsActive      bool      `db:"is_active"`
}
