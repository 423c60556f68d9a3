package usecase

import (
	"context"
	"time"

	"appointment-booking/internal/data/entity"
	"appointment-booking/internal/timeslot"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type mockTenantRepo struct{ mock.Mock }

func (m *mockTenantRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	args := m.Called(ctx, id)
	tenant, _ := args.Get(0).(*entity.Tenant)
	return tenant, args.Error(1)
}

type mockDayRepo struct{ mock.Mock }

func (m *mockDayRepo) FindByKey(ctx context.Context, tenantID uuid.UUID, key string) (*entity.Day, error) {
	args := m.Called(ctx, tenantID, key)
	day, _ := args.Get(0).(*entity.Day)
	return day, args.Error(1)
}

func (m *mockDayRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Day, error) {
	args := m.Called(ctx, tenantID, id)
	day, _ := args.Get(0).(*entity.Day)
	return day, args.Error(1)
}

func (m *mockDayRepo) FindAll(ctx context.Context, tenantID uuid.UUID) ([]*entity.Day, error) {
	args := m.Called(ctx, tenantID)
	days, _ := args.Get(0).([]*entity.Day)
	return days, args.Error(1)
}

func (m *mockDayRepo) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, isActive bool) error {
	args := m.Called(ctx, tenantID, id, isActive)
	return args.Error(0)
}

type mockDayTypeRepo struct{ mock.Mock }

func (m *mockDayTypeRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.DayType, error) {
	args := m.Called(ctx, tenantID, id)
	dayType, _ := args.Get(0).(*entity.DayType)
	return dayType, args.Error(1)
}

func (m *mockDayTypeRepo) FindAllActive(ctx context.Context, tenantID uuid.UUID) ([]*entity.DayType, error) {
	args := m.Called(ctx, tenantID)
	dayTypes, _ := args.Get(0).([]*entity.DayType)
	return dayTypes, args.Error(1)
}

type mockSlotRepo struct{ mock.Mock }

func (m *mockSlotRepo) Create(ctx context.Context, slot *entity.ScheduleSlot) error {
	args := m.Called(ctx, slot)
	return args.Error(0)
}

func (m *mockSlotRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.ScheduleSlot, error) {
	args := m.Called(ctx, tenantID, id)
	slot, _ := args.Get(0).(*entity.ScheduleSlot)
	return slot, args.Error(1)
}

func (m *mockSlotRepo) FindActiveByDay(ctx context.Context, tenantID, dayID uuid.UUID) ([]*entity.ScheduleSlot, error) {
	args := m.Called(ctx, tenantID, dayID)
	slots, _ := args.Get(0).([]*entity.ScheduleSlot)
	return slots, args.Error(1)
}

func (m *mockSlotRepo) FindByDayAndRange(ctx context.Context, tenantID, dayID uuid.UUID, timeRange timeslot.Range) (*entity.ScheduleSlot, error) {
	args := m.Called(ctx, tenantID, dayID, timeRange)
	slot, _ := args.Get(0).(*entity.ScheduleSlot)
	return slot, args.Error(1)
}

func (m *mockSlotRepo) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, isActive bool) error {
	args := m.Called(ctx, tenantID, id, isActive)
	return args.Error(0)
}

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Appointment, error) {
	args := m.Called(ctx, tenantID, id)
	appointment, _ := args.Get(0).(*entity.Appointment)
	return appointment, args.Error(1)
}

func (m *mockAppointmentRepo) FindAllActive(ctx context.Context, tenantID uuid.UUID) ([]*entity.Appointment, error) {
	args := m.Called(ctx, tenantID)
	appointments, _ := args.Get(0).([]*entity.Appointment)
	return appointments, args.Error(1)
}

type mockSubAppointmentRepo struct{ mock.Mock }

func (m *mockSubAppointmentRepo) FindActiveByAppointment(ctx context.Context, tenantID, appointmentID uuid.UUID) ([]*entity.SubAppointment, error) {
	args := m.Called(ctx, tenantID, appointmentID)
	subs, _ := args.Get(0).([]*entity.SubAppointment)
	return subs, args.Error(1)
}

type mockTaxRepo struct{ mock.Mock }

func (m *mockTaxRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Tax, error) {
	args := m.Called(ctx, tenantID, id)
	tax, _ := args.Get(0).(*entity.Tax)
	return tax, args.Error(1)
}

type mockCouponRepo struct{ mock.Mock }

func (m *mockCouponRepo) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*entity.Coupon, error) {
	args := m.Called(ctx, tenantID, code)
	coupon, _ := args.Get(0).(*entity.Coupon)
	return coupon, args.Error(1)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) Create(ctx context.Context, booking *entity.Booking, items []*entity.BookingItem) error {
	args := m.Called(ctx, booking, items)
	return args.Error(0)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, tenantID, id)
	booking, _ := args.Get(0).(*entity.Booking)
	return booking, args.Error(1)
}

func (m *mockBookingRepo) FindItemsByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingItem, error) {
	args := m.Called(ctx, bookingID)
	items, _ := args.Get(0).([]*entity.BookingItem)
	return items, args.Error(1)
}

func (m *mockBookingRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	bookings, _ := args.Get(0).([]*entity.Booking)
	return bookings, args.Error(1)
}

func (m *mockBookingRepo) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) FindActiveByDate(ctx context.Context, tenantID uuid.UUID, date time.Time, appointmentID *uuid.UUID) ([]*entity.Booking, error) {
	args := m.Called(ctx, tenantID, date, appointmentID)
	bookings, _ := args.Get(0).([]*entity.Booking)
	return bookings, args.Error(1)
}

func (m *mockBookingRepo) CountActiveAtSlot(ctx context.Context, tenantID uuid.UUID, date time.Time, timeRange timeslot.Range, appointmentID, excludeBookingID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, date, timeRange, appointmentID, excludeBookingID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) UpdateSchedule(ctx context.Context, tenantID, id uuid.UUID, date time.Time, timeRange timeslot.Range, allowMultiple bool) error {
	args := m.Called(ctx, tenantID, id, date, timeRange, allowMultiple)
	return args.Error(0)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status entity.BookingStatus) error {
	args := m.Called(ctx, tenantID, id, status)
	return args.Error(0)
}

func (m *mockBookingRepo) UpdateCancel(ctx context.Context, tenantID, id uuid.UUID, reason *string) error {
	args := m.Called(ctx, tenantID, id, reason)
	return args.Error(0)
}

func (m *mockBookingRepo) UpdatePayment(ctx context.Context, tenantID, id uuid.UUID, paymentStatus entity.PaymentStatus, transactionID *string) error {
	args := m.Called(ctx, tenantID, id, paymentStatus, transactionID)
	return args.Error(0)
}
