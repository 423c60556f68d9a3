package usecase

import (
	"context"
	"fmt"
	"time"

	"appointment-booking/internal/data/entity"
	"appointment-booking/internal/data/repository"
	"appointment-booking/internal/dto/response"
	"appointment-booking/internal/timeslot"
	"appointment-booking/pkg/metrics"
	"appointment-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgDayNotConfigured = "Day is not configured for booking"
	msgDayInactive      = "Day is not active for booking"
	msgNoSlots          = "No active slots configured for this day"
	msgSlotNotFound     = "No slot configured at this time"
	msgSlotBooked       = "Slot is already booked"
	msgSlotAvailable    = "Slot is available"

	// untyped bucket for slots without a day type
	dayTypeGeneral = "general"
)

type AvailabilityService interface {
	GetAvailableSlotsForDate(ctx context.Context, date string, appointmentID *uuid.UUID) (*response.DayAvailability, error)
	GetAvailabilityForDateRange(ctx context.Context, start, end string, appointmentID *uuid.UUID) ([]response.DateSummary, error)
	NextAvailableSlot(ctx context.Context, from string, days int, appointmentID *uuid.UUID) (*response.NextSlotResponse, error)
	CheckSlotAvailability(ctx context.Context, date, timeSlot string, appointmentID *uuid.UUID) (*response.SlotCheckResponse, error)
	CheckSlotForReschedule(ctx context.Context, date, timeSlot string, appointmentID, excludeBookingID uuid.UUID) (*response.SlotCheckResponse, error)
}

type availabilityService struct {
	repo       *repository.Repository
	log        *zap.Logger
	clock      Clock
	windowDays int
}

func NewAvailabilityService(repo *repository.Repository, log *zap.Logger, clock Clock, windowDays int) AvailabilityService {
	if windowDays <= 0 {
		windowDays = 30
	}
	return &availabilityService{
		repo:       repo,
		log:        log.With(zap.String("service", "availability")),
		clock:      clock,
		windowDays: windowDays,
	}
}

// slotStatus pairs a configured slot with its availability on one date.
type slotStatus struct {
	slot      *entity.ScheduleSlot
	dayType   string
	available bool
}

// daySchedule is the resolved schedule of one concrete date.
type daySchedule struct {
	day       *entity.Day
	available bool
	message   string
	slots     []slotStatus
}

// resolveDay loads the weekday configuration for a date and cross-references
// active bookings. Business outcomes (inactive day, no slots) come back as
// unavailable results with a reason, never as errors.
func (s *availabilityService) resolveDay(ctx context.Context, tenant utils.TenantContext, date time.Time, appointmentID *uuid.UUID) (*daySchedule, error) {
	dayKey := timeslot.WeekdayKey(date)

	day, err := s.repo.Day.FindByKey(ctx, tenant.ID, dayKey)
	if err != nil {
		return nil, fmt.Errorf("resolve day %s: %w", dayKey, err)
	}
	if day == nil {
		return &daySchedule{message: msgDayNotConfigured}, nil
	}
	if !day.IsActive {
		return &daySchedule{day: day, message: msgDayInactive}, nil
	}

	slots, err := s.repo.Slot.FindActiveByDay(ctx, tenant.ID, day.ID)
	if err != nil {
		return nil, fmt.Errorf("load slots for %s: %w", dayKey, err)
	}
	if len(slots) == 0 {
		return &daySchedule{day: day, message: msgNoSlots}, nil
	}

	bookings, err := s.repo.Booking.FindActiveByDate(ctx, tenant.ID, date, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("load bookings for %s: %w", date.Format(timeslot.DateFormat), err)
	}

	bookedAt := make(map[string]int, len(bookings))
	for _, booking := range bookings {
		bookedAt[booking.TimeRange.String()]++
	}

	dayTypeTitles, err := s.dayTypeTitles(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	statuses := make([]slotStatus, len(slots))
	for i, slot := range slots {
		booked := bookedAt[slot.TimeRange.String()] > 0

		dayType := dayTypeGeneral
		if slot.DayTypeID != nil {
			if title, ok := dayTypeTitles[*slot.DayTypeID]; ok {
				dayType = title
			}
		}

		statuses[i] = slotStatus{
			slot:      slot,
			dayType:   dayType,
			available: !booked || slot.AllowMultiple,
		}
	}

	return &daySchedule{day: day, available: true, slots: statuses}, nil
}

func (s *availabilityService) dayTypeTitles(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]string, error) {
	dayTypes, err := s.repo.DayType.FindAllActive(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("load day types: %w", err)
	}

	titles := make(map[uuid.UUID]string, len(dayTypes))
	for _, dayType := range dayTypes {
		titles[dayType.ID] = dayType.Title
	}
	return titles, nil
}

func (s *availabilityService) GetAvailableSlotsForDate(ctx context.Context, date string, appointmentID *uuid.UUID) (*response.DayAvailability, error) {
	tenant, ok := utils.GetTenantFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("tenant context missing")
	}

	parsedDate, err := timeslot.ParseDate(date, tenant.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	schedule, err := s.resolveDay(ctx, tenant, parsedDate, appointmentID)
	if err != nil {
		s.log.Error("Failed to resolve day availability",
			zap.Error(err),
			zap.String("date", date),
		)
		return nil, err
	}

	result := &response.DayAvailability{
		Date:        date,
		Day:         timeslot.WeekdayKey(parsedDate),
		Available:   schedule.available,
		Message:     schedule.message,
		Slots:       []response.SlotInfo{},
		SlotsByType: map[string][]response.SlotInfo{},
	}

	for _, status := range schedule.slots {
		info := response.SlotInfo{
			SlotID:        status.slot.ID.String(),
			Time:          status.slot.TimeRange.String(),
			DayType:       status.dayType,
			AllowMultiple: status.slot.AllowMultiple,
			Available:     status.available,
		}
		result.Slots = append(result.Slots, info)
		result.SlotsByType[status.dayType] = append(result.SlotsByType[status.dayType], info)
	}

	return result, nil
}

func (s *availabilityService) GetAvailabilityForDateRange(ctx context.Context, start, end string, appointmentID *uuid.UUID) ([]response.DateSummary, error) {
	tenant, ok := utils.GetTenantFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("tenant context missing")
	}

	startDate, err := timeslot.ParseDate(start, tenant.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	endDate, err := timeslot.ParseDate(end, tenant.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("invalid date range: end %s is before start %s", end, start)
	}

	// Inclusive day-by-day calendar walk, counts only
	var summaries []response.DateSummary
	for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
		schedule, err := s.resolveDay(ctx, tenant, date, appointmentID)
		if err != nil {
			return nil, err
		}

		summary := response.DateSummary{
			Date:      date.Format(timeslot.DateFormat),
			Day:       timeslot.WeekdayKey(date),
			Available: schedule.available,
		}
		for _, status := range schedule.slots {
			summary.TotalSlots++
			if status.available {
				summary.OpenSlots++
			} else {
				summary.BookedSlots++
			}
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func (s *availabilityService) NextAvailableSlot(ctx context.Context, from string, days int, appointmentID *uuid.UUID) (*response.NextSlotResponse, error) {
	tenant, ok := utils.GetTenantFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("tenant context missing")
	}

	fromDate, err := timeslot.ParseDate(from, tenant.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	if days <= 0 {
		days = s.windowDays
	}

	now := s.clock.Now().In(tenant.Location)

	for offset := 0; offset < days; offset++ {
		date := fromDate.AddDate(0, 0, offset)
		if timeslot.IsPastDate(date, now) {
			continue
		}

		schedule, err := s.resolveDay(ctx, tenant, date, appointmentID)
		if err != nil {
			return nil, err
		}
		if !schedule.available {
			continue
		}

		for _, status := range schedule.slots {
			if !status.available {
				continue
			}
			if timeslot.IsPastSlot(date, status.slot.TimeRange.Start, now) {
				continue
			}

			return &response.NextSlotResponse{
				Found:   true,
				Date:    date.Format(timeslot.DateFormat),
				Day:     timeslot.WeekdayKey(date),
				Time:    status.slot.TimeRange.String(),
				DayType: status.dayType,
			}, nil
		}
	}

	return &response.NextSlotResponse{Found: false}, nil
}

func (s *availabilityService) CheckSlotAvailability(ctx context.Context, date, timeSlot string, appointmentID *uuid.UUID) (*response.SlotCheckResponse, error) {
	return s.checkSlot(ctx, date, timeSlot, appointmentID, nil)
}

func (s *availabilityService) CheckSlotForReschedule(ctx context.Context, date, timeSlot string, appointmentID, excludeBookingID uuid.UUID) (*response.SlotCheckResponse, error) {
	return s.checkSlot(ctx, date, timeSlot, &appointmentID, &excludeBookingID)
}

func (s *availabilityService) checkSlot(ctx context.Context, date, timeSlot string, appointmentID, excludeBookingID *uuid.UUID) (*response.SlotCheckResponse, error) {
	metrics.AvailabilityChecks.Inc()

	tenant, ok := utils.GetTenantFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("tenant context missing")
	}

	parsedDate, err := timeslot.ParseDate(date, tenant.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	timeRange, err := timeslot.ParseRange(timeSlot)
	if err != nil {
		return nil, fmt.Errorf("invalid time slot: %w", err)
	}

	day, err := s.repo.Day.FindByKey(ctx, tenant.ID, timeslot.WeekdayKey(parsedDate))
	if err != nil {
		return nil, fmt.Errorf("resolve day: %w", err)
	}
	if day == nil {
		return &response.SlotCheckResponse{Available: false, Message: msgDayNotConfigured}, nil
	}
	if !day.IsActive {
		return &response.SlotCheckResponse{Available: false, Message: msgDayInactive}, nil
	}

	slot, err := s.repo.Slot.FindByDayAndRange(ctx, tenant.ID, day.ID, timeRange)
	if err != nil {
		return nil, fmt.Errorf("find slot: %w", err)
	}
	if slot == nil {
		return &response.SlotCheckResponse{Available: false, Message: msgSlotNotFound}, nil
	}

	// Multi-booking slots never conflict
	if slot.AllowMultiple {
		return &response.SlotCheckResponse{Available: true, AllowMultiple: true, Message: msgSlotAvailable}, nil
	}

	count, err := s.repo.Booking.CountActiveAtSlot(ctx, tenant.ID, parsedDate, timeRange, appointmentID, excludeBookingID)
	if err != nil {
		return nil, fmt.Errorf("check slot conflicts: %w", err)
	}
	if count > 0 {
		return &response.SlotCheckResponse{Available: false, Message: msgSlotBooked}, nil
	}

	return &response.SlotCheckResponse{Available: true, Message: msgSlotAvailable}, nil
}
