package usecase

import (
	"context"
	"fmt"

	"appointment-booking/internal/data/entity"
	"appointment-booking/internal/data/repository"
	"appointment-booking/internal/dto/request"
	"appointment-booking/internal/dto/response"
	"appointment-booking/internal/timeslot"
	"appointment-booking/pkg/lock"
	"appointment-booking/pkg/metrics"
	"appointment-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	ListBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	RescheduleBooking(ctx context.Context, bookingID string, req *request.RescheduleBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string, req *request.CancelBookingRequest) error
	UpdateBookingStatus(ctx context.Context, bookingID, status string) (*response.BookingResponse, error)
	UpdatePaymentStatus(ctx context.Context, bookingID string, req *request.UpdatePaymentStatusRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo         *repository.Repository
	log          *zap.Logger
	clock        Clock
	availability AvailabilityService
	pricing      PricingService
	locker       lock.SlotLocker
	sink         NotificationSink
}

func NewBookingService(
	repo *repository.Repository,
	log *zap.Logger,
	clock Clock,
	availability AvailabilityService,
	pricingSrv PricingService,
	locker lock.SlotLocker,
	sink NotificationSink,
) BookingService {
	return &bookingService{
		repo:         repo,
		log:          log.With(zap.String("service", "booking")),
		clock:        clock,
		availability: availability,
		pricing:      pricingSrv,
		locker:       locker,
		sink:         sink,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	tenant, ok := utils.GetTenantFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("tenant context missing")
	}

	appointmentID, err := uuid.Parse(req.AppointmentID)
	if err != nil {
		return nil, fmt.Errorf("invalid appointment ID format %s: %w", req.AppointmentID, err)
	}

	appointment, err := s.repo.Appointment.FindByID(ctx, tenant.ID, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("load appointment: %w", err)
	}
	if appointment == nil || !appointment.IsActive {
		return nil, fmt.Errorf("appointment %s not found", req.AppointmentID)
	}

	date, err := timeslot.ParseDate(req.Date, tenant.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	timeRange, err := timeslot.ParseRange(req.TimeSlot)
	if err != nil {
		return nil, fmt.Errorf("invalid time slot: %w", err)
	}

	subIDs, err := utils.ParseUUIDList(req.SubAppointmentIDs)
	if err != nil {
		return nil, fmt.Errorf("invalid sub-appointment ID: %w", err)
	}

	// Past checks against tenant-local "now"
	now := s.clock.Now().In(tenant.Location)
	if timeslot.IsPastDate(date, now) {
		return nil, fmt.Errorf("cannot book a past date %s", req.Date)
	}
	if timeslot.IsPastSlot(date, timeRange.Start, now) {
		return nil, fmt.Errorf("cannot book a past time slot %s", req.TimeSlot)
	}

	// Serialize the check-then-insert sequence per slot. The partial unique
	// index on active bookings backstops this if the lock layer is disabled.
	lockKey := slotLockKey(tenant.ID, appointmentID, req.Date, timeRange)
	release, acquired, err := s.locker.Acquire(ctx, lockKey)
	if err != nil {
		s.log.Error("Slot lock unavailable, relying on unique index", zap.Error(err))
	} else if !acquired {
		metrics.BookingConflicts.Inc()
		return nil, fmt.Errorf("slot %s is already being booked, please retry", req.TimeSlot)
	} else {
		defer release()
	}

	// Availability is re-checked at write time, never trusted from an
	// earlier client-side check.
	check, err := s.availability.CheckSlotAvailability(ctx, req.Date, req.TimeSlot, &appointmentID)
	if err != nil {
		return nil, fmt.Errorf("check slot availability: %w", err)
	}
	if !check.Available {
		metrics.BookingConflicts.Inc()
		return nil, fmt.Errorf("%s", check.Message)
	}

	breakdown, err := s.pricing.CalculatePricing(ctx, appointmentID, subIDs, req.CouponCode)
	if err != nil {
		return nil, fmt.Errorf("calculate pricing: %w", err)
	}

	now = s.clock.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TenantID:      tenant.ID,
		BookingRef:    utils.GenerateBookingRef(),
		AppointmentID: appointmentID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		BookingDate:   date,
		TimeRange:     timeRange,
		AllowMultiple: check.AllowMultiple,
		BasePrice:     breakdown.BasePrice,
		SubItemTotal:  breakdown.SubItemTotal,
		Subtotal:      breakdown.Subtotal,
		Discount:      breakdown.Discount,
		TaxAmount:     breakdown.TaxAmount,
		TotalPrice:    breakdown.Total,
		Status:        entity.BookingStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
	}

	items := make([]*entity.BookingItem, len(breakdown.SubItems))
	for i, subItem := range breakdown.SubItems {
		items[i] = &entity.BookingItem{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			BookingID:        booking.ID,
			SubAppointmentID: subItem.ID,
			Name:             subItem.Name,
			Price:            subItem.Price,
		}
	}

	if err := s.repo.Booking.Create(ctx, booking, items); err != nil {
		return nil, err
	}

	metrics.BookingsCreated.Inc()
	s.sink.Notify(ctx, booking.ID, EventBookingCreated)

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_ref", booking.BookingRef),
		zap.String("appointment_id", req.AppointmentID),
		zap.String("date", req.Date),
		zap.String("time_slot", req.TimeSlot),
		zap.Float64("total_price", booking.TotalPrice),
	)

	resp := response.BookingToResponse(booking, appointment.Name, items)
	return &resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	tenant, booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.Booking.FindItemsByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("load booking items: %w", err)
	}

	appointmentName := ""
	appointment, err := s.repo.Appointment.FindByID(ctx, tenant.ID, booking.AppointmentID)
	if err == nil && appointment != nil {
		appointmentName = appointment.Name
	}

	resp := response.BookingToResponse(booking, appointmentName, items)
	return &resp, nil
}

func (s *bookingService) ListBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	tenant, ok := utils.GetTenantFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("tenant context missing")
	}

	bookings, err := s.repo.Booking.List(ctx, tenant.ID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.Count(ctx, tenant.ID)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		items, _ := s.repo.Booking.FindItemsByBookingID(ctx, booking.ID)
		responses[i] = response.BookingToResponse(booking, "", items)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) RescheduleBooking(ctx context.Context, bookingID string, req *request.RescheduleBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Reschedule booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	tenant, booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status.IsTerminal() {
		return nil, fmt.Errorf("booking status is %s, cannot reschedule", booking.Status)
	}

	date, err := timeslot.ParseDate(req.Date, tenant.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	timeRange, err := timeslot.ParseRange(req.TimeSlot)
	if err != nil {
		return nil, fmt.Errorf("invalid time slot: %w", err)
	}

	now := s.clock.Now().In(tenant.Location)
	if timeslot.IsPastDate(date, now) {
		return nil, fmt.Errorf("cannot reschedule to a past date %s", req.Date)
	}
	if timeslot.IsPastSlot(date, timeRange.Start, now) {
		return nil, fmt.Errorf("cannot reschedule to a past time slot %s", req.TimeSlot)
	}

	lockKey := slotLockKey(tenant.ID, booking.AppointmentID, req.Date, timeRange)
	release, acquired, err := s.locker.Acquire(ctx, lockKey)
	if err != nil {
		s.log.Error("Slot lock unavailable, relying on unique index", zap.Error(err))
	} else if !acquired {
		metrics.BookingConflicts.Inc()
		return nil, fmt.Errorf("slot %s is already being booked, please retry", req.TimeSlot)
	} else {
		defer release()
	}

	// The booking itself is excluded from the conflict scan so moving within
	// the same slot's day is not self-blocking.
	check, err := s.availability.CheckSlotForReschedule(ctx, req.Date, req.TimeSlot, booking.AppointmentID, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("check slot availability: %w", err)
	}
	if !check.Available {
		metrics.BookingConflicts.Inc()
		return nil, fmt.Errorf("%s", check.Message)
	}

	if err := s.repo.Booking.UpdateSchedule(ctx, tenant.ID, booking.ID, date, timeRange, check.AllowMultiple); err != nil {
		return nil, err
	}

	booking.BookingDate = date
	booking.TimeRange = timeRange
	booking.AllowMultiple = check.AllowMultiple

	s.sink.Notify(ctx, booking.ID, EventBookingRescheduled)

	s.log.Info("Booking rescheduled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("date", req.Date),
		zap.String("time_slot", req.TimeSlot),
	)

	items, _ := s.repo.Booking.FindItemsByBookingID(ctx, booking.ID)
	resp := response.BookingToResponse(booking, "", items)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string, req *request.CancelBookingRequest) error {
	tenant, booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if !booking.Status.CanTransitionTo(entity.BookingStatusCancelled) {
		return fmt.Errorf("booking status is %s, cannot cancel", booking.Status)
	}

	var reason *string
	if req != nil && req.Reason != "" {
		reason = &req.Reason
	}

	if err := s.repo.Booking.UpdateCancel(ctx, tenant.ID, booking.ID, reason); err != nil {
		return err
	}

	metrics.BookingsCancelled.Inc()
	metrics.StatusTransitions.WithLabelValues(string(entity.BookingStatusCancelled)).Inc()
	s.sink.Notify(ctx, booking.ID, EventBookingCancelled)

	s.log.Info("Booking cancelled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_ref", booking.BookingRef),
	)

	return nil
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, bookingID, status string) (*response.BookingResponse, error) {
	next := entity.BookingStatus(status)
	switch next {
	case entity.BookingStatusConfirmed, entity.BookingStatusCancelled,
		entity.BookingStatusRejected, entity.BookingStatusComplete:
	default:
		return nil, fmt.Errorf("invalid booking status %s", status)
	}

	tenant, booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("booking status is %s, cannot transition to %s", booking.Status, next)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, tenant.ID, booking.ID, next); err != nil {
		return nil, err
	}

	booking.Status = next
	metrics.StatusTransitions.WithLabelValues(string(next)).Inc()
	s.sink.Notify(ctx, booking.ID, statusEvent(next))

	s.log.Info("Booking status updated",
		zap.String("booking_id", booking.ID.String()),
		zap.String("status", status),
	)

	items, _ := s.repo.Booking.FindItemsByBookingID(ctx, booking.ID)
	resp := response.BookingToResponse(booking, "", items)
	return &resp, nil
}

func (s *bookingService) UpdatePaymentStatus(ctx context.Context, bookingID string, req *request.UpdatePaymentStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update payment status validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	tenant, booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	paymentStatus := entity.PaymentStatus(req.PaymentStatus)

	// Payment completion promotes the booking to confirmed, so the booking
	// must still accept that transition.
	promote := paymentStatus == entity.PaymentStatusComplete &&
		booking.Status != entity.BookingStatusConfirmed
	if promote && !booking.Status.CanTransitionTo(entity.BookingStatusConfirmed) {
		return nil, fmt.Errorf("booking status is %s, cannot update payment status", booking.Status)
	}

	if err := s.repo.Booking.UpdatePayment(ctx, tenant.ID, booking.ID, paymentStatus, req.TransactionID); err != nil {
		return nil, err
	}

	booking.PaymentStatus = paymentStatus
	if req.TransactionID != nil {
		booking.TransactionID = req.TransactionID
	}
	s.sink.Notify(ctx, booking.ID, EventPaymentUpdated)

	if promote {
		if err := s.repo.Booking.UpdateStatus(ctx, tenant.ID, booking.ID, entity.BookingStatusConfirmed); err != nil {
			return nil, err
		}
		booking.Status = entity.BookingStatusConfirmed
		metrics.StatusTransitions.WithLabelValues(string(entity.BookingStatusConfirmed)).Inc()
		s.sink.Notify(ctx, booking.ID, EventBookingConfirmed)
	}

	s.log.Info("Payment status updated",
		zap.String("booking_id", booking.ID.String()),
		zap.String("payment_status", req.PaymentStatus),
		zap.String("status", string(booking.Status)),
	)

	items, _ := s.repo.Booking.FindItemsByBookingID(ctx, booking.ID)
	resp := response.BookingToResponse(booking, "", items)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (utils.TenantContext, *entity.Booking, error) {
	tenant, ok := utils.GetTenantFromContext(ctx)
	if !ok {
		return utils.TenantContext{}, nil, fmt.Errorf("tenant context missing")
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return tenant, nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, tenant.ID, id)
	if err != nil {
		return tenant, nil, fmt.Errorf("load booking: %w", err)
	}
	if booking == nil {
		return tenant, nil, fmt.Errorf("booking %s not found", bookingID)
	}

	return tenant, booking, nil
}

func slotLockKey(tenantID, appointmentID uuid.UUID, date string, timeRange timeslot.Range) string {
	return fmt.Sprintf("%s:%s:%s:%s", tenantID, appointmentID, date, timeRange.String())
}

func statusEvent(status entity.BookingStatus) string {
	switch status {
	case entity.BookingStatusConfirmed:
		return EventBookingConfirmed
	case entity.BookingStatusCancelled:
		return EventBookingCancelled
	case entity.BookingStatusComplete:
		return EventBookingCompleted
	case entity.BookingStatusRejected:
		return EventBookingRejected
	}
	return "booking_updated"
}
