package request

type CreateSlotRequest struct {
	DayID         string  `json:"day_id" validate:"required,uuid4"`
	TimeRange     string  `json:"time_range" validate:"required"`
	DayTypeID     *string `json:"day_type_id,omitempty" validate:"omitempty,uuid4"`
	AllowMultiple bool    `json:"allow_multiple"`
}

type UpdateActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
