package request

type CreateBookingRequest struct {
	AppointmentID     string   `json:"appointment_id" validate:"required,uuid4"`
	CustomerName      string   `json:"customer_name" validate:"required,min=2,max=100"`
	CustomerEmail     string   `json:"customer_email" validate:"required,email"`
	Date              string   `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot          string   `json:"time_slot" validate:"required"`
	SubAppointmentIDs []string `json:"sub_appointment_ids" validate:"omitempty,dive,uuid4"`
	CouponCode        string   `json:"coupon_code" validate:"omitempty,max=50"`
}

type RescheduleBookingRequest struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot string `json:"time_slot" validate:"required"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string  `json:"payment_status" validate:"required,oneof=pending complete failed"`
	TransactionID *string `json:"transaction_id,omitempty"`
}
