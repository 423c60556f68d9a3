package repository

import (
	"appointment-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Tenant         TenantRepository
	Day            DayRepository
	DayType        DayTypeRepository
	Slot           SlotRepository
	Appointment    AppointmentRepository
	SubAppointment SubAppointmentRepository
	Tax            TaxRepository
	Coupon         CouponRepository
	Booking        BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Tenant:         NewTenantRepository(db, log),
		Day:            NewDayRepository(db, log),
		DayType:        NewDayTypeRepository(db, log),
		Slot:           NewSlotRepository(db, log),
		Appointment:    NewAppointmentRepository(db, log),
		SubAppointment: NewSubAppointmentRepository(db, log),
		Tax:            NewTaxRepository(db, log),
		Coupon:         NewCouponRepository(db, log),
		Booking:        NewBookingRepository(db, log),
	}
}
