package usecase

import (
	"context"
	"testing"
	"time"

	"appointment-booking/internal/data/entity"
	"appointment-booking/internal/data/repository"
	"appointment-booking/internal/timeslot"
	"appointment-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// monday 2026-03-02 09:30 UTC
var testNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func tenantCtx() (context.Context, utils.TenantContext) {
	tenant := utils.TenantContext{
		ID:       uuid.New(),
		Name:     "Test Clinic",
		Timezone: "UTC",
		Location: time.UTC,
	}
	return utils.SetTenantContext(context.Background(), tenant), tenant
}

func mustRange(t *testing.T, value string) timeslot.Range {
	t.Helper()
	timeRange, err := timeslot.ParseRange(value)
	require.NoError(t, err)
	return timeRange
}

type availabilityFixture struct {
	days     *mockDayRepo
	dayTypes *mockDayTypeRepo
	slots    *mockSlotRepo
	bookings *mockBookingRepo
	srv      AvailabilityService
}

func newAvailabilityFixture() *availabilityFixture {
	f := &availabilityFixture{
		days:     &mockDayRepo{},
		dayTypes: &mockDayTypeRepo{},
		slots:    &mockSlotRepo{},
		bookings: &mockBookingRepo{},
	}
	repo := &repository.Repository{
		Day:     f.days,
		DayType: f.dayTypes,
		Slot:    f.slots,
		Booking: f.bookings,
	}
	f.srv = NewAvailabilityService(repo, zap.NewNop(), fixedClock{now: testNow}, 30)
	return f
}

func activeDay(tenantID uuid.UUID, key string) *entity.Day {
	return &entity.Day{
		Base:     entity.Base{ID: uuid.New()},
		TenantID: tenantID,
		Key:      key,
		Label:    key,
		IsActive: true,
	}
}

func activeSlot(tenantID, dayID uuid.UUID, timeRange timeslot.Range) *entity.ScheduleSlot {
	return &entity.ScheduleSlot{
		Base:      entity.Base{ID: uuid.New()},
		TenantID:  tenantID,
		DayID:     dayID,
		TimeRange: timeRange,
		IsActive:  true,
	}
}

func TestGetAvailableSlotsForDate_DayNotConfigured(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newAvailabilityFixture()

	f.days.On("FindByKey", mock.Anything, tenant.ID, "monday").Return(nil, nil)

	result, err := f.srv.GetAvailableSlotsForDate(ctx, "2026-03-02", nil)
	require.NoError(t, err)

	assert.False(t, result.Available)
	assert.Equal(t, msgDayNotConfigured, result.Message)
	assert.Empty(t, result.Slots)
}

func TestGetAvailableSlotsForDate_InactiveDay(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newAvailabilityFixture()

	day := activeDay(tenant.ID, "monday")
	day.IsActive = false
	f.days.On("FindByKey", mock.Anything, tenant.ID, "monday").Return(day, nil)

	result, err := f.srv.GetAvailableSlotsForDate(ctx, "2026-03-02", nil)
	require.NoError(t, err)

	assert.False(t, result.Available)
	assert.Equal(t, msgDayInactive, result.Message)
}

func TestGetAvailableSlotsForDate_MarksBookedSlots(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newAvailabilityFixture()

	day := activeDay(tenant.ID, "monday")
	morning := activeSlot(tenant.ID, day.ID, mustRange(t, "09:00 - 10:00"))
	midday := activeSlot(tenant.ID, day.ID, mustRange(t, "10:00 - 11:00"))

	booked := &entity.Booking{
		TimeRange: mustRange(t, "09:00 - 10:00"),
		Status:    entity.BookingStatusConfirmed,
	}

	f.days.On("FindByKey", mock.Anything, tenant.ID, "monday").Return(day, nil)
	f.slots.On("FindActiveByDay", mock.Anything, tenant.ID, day.ID).
		Return([]*entity.ScheduleSlot{morning, midday}, nil)
	f.bookings.On("FindActiveByDate", mock.Anything, tenant.ID, mock.Anything, (*uuid.UUID)(nil)).
		Return([]*entity.Booking{booked}, nil)
	f.dayTypes.On("FindAllActive", mock.Anything, tenant.ID).Return(nil, nil)

	result, err := f.srv.GetAvailableSlotsForDate(ctx, "2026-03-02", nil)
	require.NoError(t, err)

	require.Len(t, result.Slots, 2)
	assert.True(t, result.Available)
	assert.False(t, result.Slots[0].Available)
	assert.True(t, result.Slots[1].Available)
	assert.Equal(t, dayTypeGeneral, result.Slots[0].DayType)
	assert.Len(t, result.SlotsByType[dayTypeGeneral], 2)
}

func TestGetAvailableSlotsForDate_AllowMultipleStaysAvailable(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newAvailabilityFixture()

	day := activeDay(tenant.ID, "monday")
	group := activeSlot(tenant.ID, day.ID, mustRange(t, "09:00 - 10:00"))
	group.AllowMultiple = true

	booked := &entity.Booking{
		TimeRange: mustRange(t, "09:00 - 10:00"),
		Status:    entity.BookingStatusPending,
	}

	f.days.On("FindByKey", mock.Anything, tenant.ID, "monday").Return(day, nil)
	f.slots.On("FindActiveByDay", mock.Anything, tenant.ID, day.ID).
		Return([]*entity.ScheduleSlot{group}, nil)
	f.bookings.On("FindActiveByDate", mock.Anything, tenant.ID, mock.Anything, (*uuid.UUID)(nil)).
		Return([]*entity.Booking{booked}, nil)
	f.dayTypes.On("FindAllActive", mock.Anything, tenant.ID).Return(nil, nil)

	result, err := f.srv.GetAvailableSlotsForDate(ctx, "2026-03-02", nil)
	require.NoError(t, err)

	require.Len(t, result.Slots, 1)
	assert.True(t, result.Slots[0].Available)
}

func TestGetAvailabilityForDateRange_Counts(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newAvailabilityFixture()

	monday := activeDay(tenant.ID, "monday")
	slotA := activeSlot(tenant.ID, monday.ID, mustRange(t, "09:00 - 10:00"))
	slotB := activeSlot(tenant.ID, monday.ID, mustRange(t, "10:00 - 11:00"))
	booked := &entity.Booking{TimeRange: mustRange(t, "09:00 - 10:00")}

	f.days.On("FindByKey", mock.Anything, tenant.ID, "monday").Return(monday, nil)
	f.days.On("FindByKey", mock.Anything, tenant.ID, "tuesday").Return(nil, nil)
	f.slots.On("FindActiveByDay", mock.Anything, tenant.ID, monday.ID).
		Return([]*entity.ScheduleSlot{slotA, slotB}, nil)
	f.bookings.On("FindActiveByDate", mock.Anything, tenant.ID, mock.Anything, (*uuid.UUID)(nil)).
		Return([]*entity.Booking{booked}, nil)
	f.dayTypes.On("FindAllActive", mock.Anything, tenant.ID).Return(nil, nil)

	summaries, err := f.srv.GetAvailabilityForDateRange(ctx, "2026-03-02", "2026-03-03", nil)
	require.NoError(t, err)

	require.Len(t, summaries, 2)
	assert.True(t, summaries[0].Available)
	assert.Equal(t, 2, summaries[0].TotalSlots)
	assert.Equal(t, 1, summaries[0].OpenSlots)
	assert.Equal(t, 1, summaries[0].BookedSlots)
	assert.False(t, summaries[1].Available)
	assert.Equal(t, 0, summaries[1].TotalSlots)
}

func TestGetAvailabilityForDateRange_WeekIsSevenAscendingDates(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newAvailabilityFixture()

	f.days.On("FindByKey", mock.Anything, tenant.ID, mock.Anything).Return(nil, nil)

	summaries, err := f.srv.GetAvailabilityForDateRange(ctx, "2026-03-02", "2026-03-08", nil)
	require.NoError(t, err)

	require.Len(t, summaries, 7)
	assert.Equal(t, "2026-03-02", summaries[0].Date)
	assert.Equal(t, "2026-03-08", summaries[6].Date)
	for i := 1; i < len(summaries); i++ {
		assert.True(t, summaries[i-1].Date < summaries[i].Date)
	}
}

func TestGetAvailabilityForDateRange_EndBeforeStart(t *testing.T) {
	ctx, _ := tenantCtx()
	f := newAvailabilityFixture()

	_, err := f.srv.GetAvailabilityForDateRange(ctx, "2026-03-03", "2026-03-02", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date range")
}

func TestNextAvailableSlot_SkipsPastSlots(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newAvailabilityFixture()

	day := activeDay(tenant.ID, "monday")
	past := activeSlot(tenant.ID, day.ID, mustRange(t, "09:00 - 10:00"))
	upcoming := activeSlot(tenant.ID, day.ID, mustRange(t, "14:00 - 15:00"))

	f.days.On("FindByKey", mock.Anything, tenant.ID, "monday").Return(day, nil)
	f.slots.On("FindActiveByDay", mock.Anything, tenant.ID, day.ID).
		Return([]*entity.ScheduleSlot{past, upcoming}, nil)
	f.bookings.On("FindActiveByDate", mock.Anything, tenant.ID, mock.Anything, (*uuid.UUID)(nil)).
		Return(nil, nil)
	f.dayTypes.On("FindAllActive", mock.Anything, tenant.ID).Return(nil, nil)

	// clock is 09:30, so the 09:00 slot on today has already started
	result, err := f.srv.NextAvailableSlot(ctx, "2026-03-02", 1, nil)
	require.NoError(t, err)

	assert.True(t, result.Found)
	assert.Equal(t, "2026-03-02", result.Date)
	assert.Equal(t, "14:00 - 15:00", result.Time)
}

func TestNextAvailableSlot_NothingInWindow(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newAvailabilityFixture()

	f.days.On("FindByKey", mock.Anything, tenant.ID, mock.Anything).Return(nil, nil)

	result, err := f.srv.NextAvailableSlot(ctx, "2026-03-02", 7, nil)
	require.NoError(t, err)

	assert.False(t, result.Found)
}

func TestCheckSlotAvailability_SlotNotConfigured(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newAvailabilityFixture()

	day := activeDay(tenant.ID, "monday")
	f.days.On("FindByKey", mock.Anything, tenant.ID, "monday").Return(day, nil)
	f.slots.On("FindByDayAndRange", mock.Anything, tenant.ID, day.ID, mustRange(t, "09:00 - 10:00")).
		Return(nil, nil)

	result, err := f.srv.CheckSlotAvailability(ctx, "2026-03-02", "09:00 - 10:00", nil)
	require.NoError(t, err)

	assert.False(t, result.Available)
	assert.Equal(t, msgSlotNotFound, result.Message)
}

func TestCheckSlotAvailability_Booked(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newAvailabilityFixture()

	day := activeDay(tenant.ID, "monday")
	slot := activeSlot(tenant.ID, day.ID, mustRange(t, "09:00 - 10:00"))

	f.days.On("FindByKey", mock.Anything, tenant.ID, "monday").Return(day, nil)
	f.slots.On("FindByDayAndRange", mock.Anything, tenant.ID, day.ID, slot.TimeRange).
		Return(slot, nil)
	f.bookings.On("CountActiveAtSlot", mock.Anything, tenant.ID, mock.Anything, slot.TimeRange, (*uuid.UUID)(nil), (*uuid.UUID)(nil)).
		Return(int64(1), nil)

	result, err := f.srv.CheckSlotAvailability(ctx, "2026-03-02", "09:00 - 10:00", nil)
	require.NoError(t, err)

	assert.False(t, result.Available)
	assert.Equal(t, msgSlotBooked, result.Message)
}

func TestCheckSlotAvailability_Open(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newAvailabilityFixture()

	day := activeDay(tenant.ID, "monday")
	slot := activeSlot(tenant.ID, day.ID, mustRange(t, "09:00 - 10:00"))

	f.days.On("FindByKey", mock.Anything, tenant.ID, "monday").Return(day, nil)
	f.slots.On("FindByDayAndRange", mock.Anything, tenant.ID, day.ID, slot.TimeRange).
		Return(slot, nil)
	f.bookings.On("CountActiveAtSlot", mock.Anything, tenant.ID, mock.Anything, slot.TimeRange, (*uuid.UUID)(nil), (*uuid.UUID)(nil)).
		Return(int64(0), nil)

	result, err := f.srv.CheckSlotAvailability(ctx, "2026-03-02", "09:00 - 10:00", nil)
	require.NoError(t, err)

	assert.True(t, result.Available)
	assert.Equal(t, msgSlotAvailable, result.Message)
}

func TestCheckSlotAvailability_AllowMultipleSkipsCount(t *testing.T) {
	ctx, tenant := tenantCtx()
	f := newAvailabilityFixture()

	day := activeDay(tenant.ID, "monday")
	slot := activeSlot(tenant.ID, day.ID, mustRange(t, "09:00 - 10:00"))
	slot.AllowMultiple = true

	f.days.On("FindByKey", mock.Anything, tenant.ID, "monday").Return(day, nil)
	f.slots.On("FindByDayAndRange", mock.Anything, tenant.ID, day.ID, slot.TimeRange).
		Return(slot, nil)

	result, err := f.srv.CheckSlotAvailability(ctx, "2026-03-02", "09:00 - 10:00", nil)
	require.NoError(t, err)

	assert.True(t, result.Available)
	f.bookings.AssertNotCalled(t, "CountActiveAtSlot",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckSlotAvailability_MissingTenant(t *testing.T) {
	f := newAvailabilityFixture()

	_, err := f.srv.CheckSlotAvailability(context.Background(), "2026-03-02", "09:00 - 10:00", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tenant context missing")
}
