package response

import (
	"time"

	"appointment-booking/internal/data/entity"
	"appointment-booking/internal/pricing"
	"appointment-booking/internal/timeslot"
)

type BookingResponse struct {
	ID              string             `json:"id"`
	BookingRef      string             `json:"booking_ref"`
	AppointmentID   string             `json:"appointment_id"`
	AppointmentName string             `json:"appointment_name,omitempty"`
	CustomerName    string             `json:"customer_name"`
	CustomerEmail   string             `json:"customer_email"`
	Date            string             `json:"date"`
	TimeSlot        string             `json:"time_slot"`
	BasePrice       float64            `json:"base_price"`
	SubItems        []pricing.LineItem `json:"sub_items,omitempty"`
	SubItemTotal    float64            `json:"sub_item_total"`
	Subtotal        float64            `json:"subtotal"`
	Discount        float64            `json:"discount"`
	TaxAmount       float64            `json:"tax_amount"`
	TotalPrice      float64            `json:"total_price"`
	Status          string             `json:"status"`
	PaymentStatus   string             `json:"payment_status"`
	TransactionID   *string            `json:"transaction_id,omitempty"`
	CancelReason    *string            `json:"cancel_reason,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking, appointmentName string, items []*entity.BookingItem) BookingResponse {
	subItems := make([]pricing.LineItem, len(items))
	for i, item := range items {
		subItems[i] = pricing.LineItem{
			ID:    item.SubAppointmentID,
			Name:  item.Name,
			Price: item.Price,
		}
	}

	return BookingResponse{
		ID:              booking.ID.String(),
		BookingRef:      booking.BookingRef,
		AppointmentID:   booking.AppointmentID.String(),
		AppointmentName: appointmentName,
		CustomerName:    booking.CustomerName,
		CustomerEmail:   booking.CustomerEmail,
		Date:            booking.BookingDate.Format(timeslot.DateFormat),
		TimeSlot:        booking.TimeRange.String(),
		BasePrice:       booking.BasePrice,
		SubItems:        subItems,
		SubItemTotal:    booking.SubItemTotal,
		Subtotal:        booking.Subtotal,
		Discount:        booking.Discount,
		TaxAmount:       booking.TaxAmount,
		TotalPrice:      booking.TotalPrice,
		Status:          string(booking.Status),
		PaymentStatus:   string(booking.PaymentStatus),
		TransactionID:   booking.TransactionID,
		CancelReason:    booking.CancelReason,
		CreatedAt:       booking.CreatedAt,
	}
}
