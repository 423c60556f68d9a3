package request

type PricingRequest struct {
	SubAppointmentIDs []string `json:"sub_appointment_ids" validate:"omitempty,dive,uuid4"`
	CouponCode        string   `json:"coupon_code" validate:"omitempty,max=50"`
}
