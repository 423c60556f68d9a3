package usecase

import (
	"context"
	"testing"

	"appointment-booking/internal/data/entity"
	"appointment-booking/internal/data/repository"
	"appointment-booking/internal/dto/request"
	"appointment-booking/internal/dto/response"
	"appointment-booking/internal/pricing"
	"appointment-booking/pkg/lock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAvailability struct {
	AvailabilityService
	check *response.SlotCheckResponse
	err   error
}

func (s *stubAvailability) CheckSlotAvailability(ctx context.Context, date, timeSlot string, appointmentID *uuid.UUID) (*response.SlotCheckResponse, error) {
	return s.check, s.err
}

func (s *stubAvailability) CheckSlotForReschedule(ctx context.Context, date, timeSlot string, appointmentID, excludeBookingID uuid.UUID) (*response.SlotCheckResponse, error) {
	return s.check, s.err
}

type stubPricing struct {
	breakdown *pricing.Breakdown
	err       error
}

func (s *stubPricing) CalculatePricing(ctx context.Context, appointmentID uuid.UUID, subAppointmentIDs []uuid.UUID, couponCode string) (*pricing.Breakdown, error) {
	return s.breakdown, s.err
}

type deniedLocker struct{}

func (deniedLocker) Acquire(ctx context.Context, key string) (func(), bool, error) {
	return nil, false, nil
}

type recordingSink struct {
	events []string
}

func (s *recordingSink) Notify(ctx context.Context, bookingID uuid.UUID, event string) {
	s.events = append(s.events, event)
}

type bookingFixture struct {
	appointments *mockAppointmentRepo
	bookings     *mockBookingRepo
	availability *stubAvailability
	pricing      *stubPricing
	sink         *recordingSink
	repo         *repository.Repository
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		appointments: &mockAppointmentRepo{},
		bookings:     &mockBookingRepo{},
		availability: &stubAvailability{check: &response.SlotCheckResponse{Available: true, Message: msgSlotAvailable}},
		pricing: &stubPricing{breakdown: &pricing.Breakdown{
			BasePrice: 100, Subtotal: 100, TaxAmount: 10, Total: 110,
		}},
		sink: &recordingSink{},
	}
	f.repo = &repository.Repository{
		Appointment: f.appointments,
		Booking:     f.bookings,
	}
	return f
}

func (f *bookingFixture) service(locker lock.SlotLocker) BookingService {
	return NewBookingService(f.repo, zap.NewNop(), fixedClock{now: testNow},
		f.availability, f.pricing, locker, f.sink)
}

func validCreateRequest(appointmentID uuid.UUID) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		AppointmentID: appointmentID.String(),
		CustomerName:  "Ann Smith",
		CustomerEmail: "ann@example.com",
		Date:          "2026-03-09",
		TimeSlot:      "09:00 - 10:00",
	}
}

func activeAppointment(tenantID uuid.UUID) *entity.Appointment {
	return &entity.Appointment{
		Base:     entity.Base{ID: uuid.New()},
		TenantID: tenantID,
		Name:     "Consultation",
		Price:    100,
		IsActive: true,
	}
}

func TestCreateBooking_Success(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newBookingFixture()

	appointment := activeAppointment(tenant.ID)
	f.appointments.On("FindByID", mock.Anything, tenant.ID, appointment.ID).Return(appointment, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	srv := f.service(lock.NoopLocker{})
	resp, err := srv.CreateBooking(ctx, validCreateRequest(appointment.ID))
	require.NoError(t, err)

	assert.Equal(t, string(entity.BookingStatusPending), resp.Status)
	assert.Equal(t, string(entity.PaymentStatusPending), resp.PaymentStatus)
	assert.Equal(t, 110.0, resp.TotalPrice)
	assert.NotEmpty(t, resp.BookingRef)
	assert.Equal(t, "2026-03-09", resp.Date)
	assert.Equal(t, []string{EventBookingCreated}, f.sink.events)
}

func TestCreateBooking_PastDateRejected(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newBookingFixture()

	appointment := activeAppointment(tenant.ID)
	f.appointments.On("FindByID", mock.Anything, tenant.ID, appointment.ID).Return(appointment, nil)

	req := validCreateRequest(appointment.ID)
	req.Date = "2026-03-01" // clock is 2026-03-02

	srv := f.service(lock.NoopLocker{})
	_, err := srv.CreateBooking(ctx, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "past date")
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_PastSlotOnTodayRejected(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newBookingFixture()

	appointment := activeAppointment(tenant.ID)
	f.appointments.On("FindByID", mock.Anything, tenant.ID, appointment.ID).Return(appointment, nil)

	req := validCreateRequest(appointment.ID)
	req.Date = "2026-03-02"
	req.TimeSlot = "09:00 - 10:00" // clock is 09:30

	srv := f.service(lock.NoopLocker{})
	_, err := srv.CreateBooking(ctx, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "past time slot")
}

func TestCreateBooking_SlotTaken(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newBookingFixture()
	f.availability.check = &response.SlotCheckResponse{Available: false, Message: msgSlotBooked}

	appointment := activeAppointment(tenant.ID)
	f.appointments.On("FindByID", mock.Anything, tenant.ID, appointment.ID).Return(appointment, nil)

	srv := f.service(lock.NoopLocker{})
	_, err := srv.CreateBooking(ctx, validCreateRequest(appointment.ID))
	require.Error(t, err)
	assert.Contains(t, err.Error(), msgSlotBooked)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_LockContention(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newBookingFixture()

	appointment := activeAppointment(tenant.ID)
	f.appointments.On("FindByID", mock.Anything, tenant.ID, appointment.ID).Return(appointment, nil)

	srv := f.service(deniedLocker{})
	_, err := srv.CreateBooking(ctx, validCreateRequest(appointment.ID))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already being booked")
}

func TestCreateBooking_UnknownAppointment(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newBookingFixture()

	missing := uuid.New()
	f.appointments.On("FindByID", mock.Anything, tenant.ID, missing).Return(nil, nil)

	srv := f.service(lock.NoopLocker{})
	_, err := srv.CreateBooking(ctx, validCreateRequest(missing))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCancelBooking_TerminalStateRejected(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newBookingFixture()

	booking := &entity.Booking{
		Base:     entity.Base{ID: uuid.New()},
		TenantID: tenant.ID,
		Status:   entity.BookingStatusComplete,
	}
	f.bookings.On("FindByID", mock.Anything, tenant.ID, booking.ID).Return(booking, nil)

	srv := f.service(lock.NoopLocker{})
	err := srv.CancelBooking(ctx, booking.ID.String(), &request.CancelBookingRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot cancel")
	f.bookings.AssertNotCalled(t, "UpdateCancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelBooking_PendingSucceeds(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newBookingFixture()

	booking := &entity.Booking{
		Base:     entity.Base{ID: uuid.New()},
		TenantID: tenant.ID,
		Status:   entity.BookingStatusPending,
	}
	f.bookings.On("FindByID", mock.Anything, tenant.ID, booking.ID).Return(booking, nil)
	f.bookings.On("UpdateCancel", mock.Anything, tenant.ID, booking.ID, mock.Anything).Return(nil)

	srv := f.service(lock.NoopLocker{})
	err := srv.CancelBooking(ctx, booking.ID.String(), &request.CancelBookingRequest{Reason: "changed plans"})
	require.NoError(t, err)
	assert.Equal(t, []string{EventBookingCancelled}, f.sink.events)
}

func TestUpdateBookingStatus_InvalidTransition(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newBookingFixture()

	booking := &entity.Booking{
		Base:     entity.Base{ID: uuid.New()},
		TenantID: tenant.ID,
		Status:   entity.BookingStatusCancelled,
	}
	f.bookings.On("FindByID", mock.Anything, tenant.ID, booking.ID).Return(booking, nil)

	srv := f.service(lock.NoopLocker{})
	_, err := srv.UpdateBookingStatus(ctx, booking.ID.String(), "confirmed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot transition")
}

func TestUpdateBookingStatus_ConfirmPending(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newBookingFixture()

	booking := &entity.Booking{
		Base:     entity.Base{ID: uuid.New()},
		TenantID: tenant.ID,
		Status:   entity.BookingStatusPending,
	}
	f.bookings.On("FindByID", mock.Anything, tenant.ID, booking.ID).Return(booking, nil)
	f.bookings.On("UpdateStatus", mock.Anything, tenant.ID, booking.ID, entity.BookingStatusConfirmed).Return(nil)
	f.bookings.On("FindItemsByBookingID", mock.Anything, booking.ID).Return(nil, nil)

	srv := f.service(lock.NoopLocker{})
	resp, err := srv.UpdateBookingStatus(ctx, booking.ID.String(), "confirmed")
	require.NoError(t, err)

	assert.Equal(t, string(entity.BookingStatusConfirmed), resp.Status)
	assert.Equal(t, []string{EventBookingConfirmed}, f.sink.events)
}

func TestUpdateBookingStatus_UnknownStatus(t *testing.T) {
	ctx, _ := tenantCtx()
	f := newBookingFixture()

	srv := f.service(lock.NoopLocker{})
	_, err := srv.UpdateBookingStatus(ctx, uuid.New().String(), "archived")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid booking status")
}

func TestUpdatePaymentStatus_CompletePromotesToConfirmed(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newBookingFixture()

	booking := &entity.Booking{
		Base:     entity.Base{ID: uuid.New()},
		TenantID: tenant.ID,
		Status:   entity.BookingStatusPending,
	}
	txID := "tx-123"
	f.bookings.On("FindByID", mock.Anything, tenant.ID, booking.ID).Return(booking, nil)
	f.bookings.On("UpdatePayment", mock.Anything, tenant.ID, booking.ID, entity.PaymentStatusComplete, &txID).Return(nil)
	f.bookings.On("UpdateStatus", mock.Anything, tenant.ID, booking.ID, entity.BookingStatusConfirmed).Return(nil)
	f.bookings.On("FindItemsByBookingID", mock.Anything, booking.ID).Return(nil, nil)

	srv := f.service(lock.NoopLocker{})
	resp, err := srv.UpdatePaymentStatus(ctx, booking.ID.String(), &request.UpdatePaymentStatusRequest{
		PaymentStatus: "complete",
		TransactionID: &txID,
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.BookingStatusConfirmed), resp.Status)
	assert.Equal(t, string(entity.PaymentStatusComplete), resp.PaymentStatus)
	assert.Equal(t, []string{EventPaymentUpdated, EventBookingConfirmed}, f.sink.events)
}

func TestUpdatePaymentStatus_CompleteOnTerminalRejected(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newBookingFixture()

	booking := &entity.Booking{
		Base:     entity.Base{ID: uuid.New()},
		TenantID: tenant.ID,
		Status:   entity.BookingStatusCancelled,
	}
	f.bookings.On("FindByID", mock.Anything, tenant.ID, booking.ID).Return(booking, nil)

	srv := f.service(lock.NoopLocker{})
	_, err := srv.UpdatePaymentStatus(ctx, booking.ID.String(), &request.UpdatePaymentStatusRequest{
		PaymentStatus: "complete",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot update payment status")
}

func TestUpdatePaymentStatus_FailedDoesNotPromote(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newBookingFixture()

	booking := &entity.Booking{
		Base:     entity.Base{ID: uuid.New()},
		TenantID: tenant.ID,
		Status:   entity.BookingStatusPending,
	}
	f.bookings.On("FindByID", mock.Anything, tenant.ID, booking.ID).Return(booking, nil)
	f.bookings.On("UpdatePayment", mock.Anything, tenant.ID, booking.ID, entity.PaymentStatusFailed, (*string)(nil)).Return(nil)
	f.bookings.On("FindItemsByBookingID", mock.Anything, booking.ID).Return(nil, nil)

	srv := f.service(lock.NoopLocker{})
	resp, err := srv.UpdatePaymentStatus(ctx, booking.ID.String(), &request.UpdatePaymentStatusRequest{
		PaymentStatus: "failed",
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.BookingStatusPending), resp.Status)
	f.bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRescheduleBooking_TerminalRejected(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newBookingFixture()

	booking := &entity.Booking{
		Base:     entity.Base{ID: uuid.New()},
		TenantID: tenant.ID,
		Status:   entity.BookingStatusRejected,
	}
	f.bookings.On("FindByID", mock.Anything, tenant.ID, booking.ID).Return(booking, nil)

	srv := f.service(lock.NoopLocker{})
	_, err := srv.RescheduleBooking(ctx, booking.ID.String(), &request.RescheduleBookingRequest{
		Date:     "2026-03-09",
		TimeSlot: "09:00 - 10:00",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot reschedule")
}

func TestRescheduleBooking_MovesSlot(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newBookingFixture()

	booking := &entity.Booking{
		Base:          entity.Base{ID: uuid.New()},
		TenantID:      tenant.ID,
		AppointmentID: uuid.New(),
		Status:        entity.BookingStatusConfirmed,
		TimeRange:     mustRange(t, "09:00 - 10:00"),
	}
	f.bookings.On("FindByID", mock.Anything, tenant.ID, booking.ID).Return(booking, nil)
	f.bookings.On("UpdateSchedule", mock.Anything, tenant.ID, booking.ID, mock.Anything, mustRange(t, "14:00 - 15:00"), false).Return(nil)
	f.bookings.On("FindItemsByBookingID", mock.Anything, booking.ID).Return(nil, nil)

	srv := f.service(lock.NoopLocker{})
	resp, err := srv.RescheduleBooking(ctx, booking.ID.String(), &request.RescheduleBookingRequest{
		Date:     "2026-03-09",
		TimeSlot: "14:00 - 15:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-09", resp.Date)
	assert.Equal(t, "14:00 - 15:00", resp.TimeSlot)
	assert.Equal(t, []string{EventBookingRescheduled}, f.sink.events)
}
