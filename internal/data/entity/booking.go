package entity

import (
	"appointment-booking/internal/timeslot"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusComplete  BookingStatus = "complete"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusComplete PaymentStatus = "complete"
	PaymentStatusFailed   PaymentStatus = "failed"
)

// bookingTransitions encodes the lifecycle:
// pending may confirm, cancel or reject; confirmed may complete or cancel;
// complete, cancelled and rejected are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled, BookingStatusRejected},
	BookingStatusConfirmed: {BookingStatusComplete, BookingStatusCancelled},
}

// CanTransitionTo reports whether the lifecycle permits moving to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are permitted.
func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// IsActive reports whether the booking blocks its slot. Cancelled and
// rejected bookings release the slot.
func (s BookingStatus) IsActive() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusComplete:
		return true
	}
	return false
}

type Booking struct {
	Base
	TenantID      uuid.UUID      `db:"tenant_id"`
	BookingRef    string         `db:"booking_ref"`
	AppointmentID uuid.UUID      `db:"appointment_id"`
	CustomerName  string         `db:"customer_name"`
	CustomerEmail string         `db:"customer_email"`
	BookingDate   time.Time      `db:"booking_date"`
	TimeRange     timeslot.Range `db:"time_slot"`
	AllowMultiple bool           `db:"allow_multiple"`
	BasePrice     float64        `db:"base_price"`
	SubItemTotal  float64        `db:"sub_item_total"`
	Subtotal      float64        `db:"subtotal"`
	Discount      float64        `db:"discount"`
	TaxAmount     float64        `db:"tax_amount"`
	TotalPrice    float64        `db:"total_price"`
	Status        BookingStatus  `db:"status"`
	PaymentStatus PaymentStatus  `db:"payment_status"`
	TransactionID *string        `db:"transaction_id"`
	CancelReason  *string        `db:"cancel_reason"`
}

// BookingItem is one booked sub-appointment row, written atomically with its
// booking.
type BookingItem struct {
	BaseSimple
	BookingID        uuid.UUID `db:"booking_id"`
	SubAppointmentID uuid.UUID `db:"sub_appointment_id"`
	Name             string    `db:"name"`
	Price            float64   `db:"price"`
}
