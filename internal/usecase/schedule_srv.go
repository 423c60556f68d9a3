package usecase

import (
	"context"
	"fmt"

	"appointment-booking/internal/data/entity"
	"appointment-booking/internal/data/repository"
	"appointment-booking/internal/dto/request"
	"appointment-booking/internal/dto/response"
	"appointment-booking/internal/timeslot"
	"appointment-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScheduleService interface {
	ListDays(ctx context.Context) ([]response.DayResponse, error)
	UpdateDayStatus(ctx context.Context, dayID string, req *request.UpdateActiveRequest) error
	CreateSlot(ctx context.Context, req *request.CreateSlotRequest) (*response.SlotResponse, error)
	UpdateSlotStatus(ctx context.Context, slotID string, req *request.UpdateActiveRequest) error
	ListDayTypes(ctx context.Context) ([]response.DayTypeResponse, error)
}

type scheduleService struct {
	repo  *repository.Repository
	log   *zap.Logger
	clock Clock
}

func NewScheduleService(repo *repository.Repository, log *zap.Logger, clock Clock) ScheduleService {
	return &scheduleService{
		repo:  repo,
		log:   log.With(zap.String("service", "schedule")),
		clock: clock,
	}
}

func (s *scheduleService) ListDays(ctx context.Context) ([]response.DayResponse, error) {
	tenant, ok := utils.GetTenantFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("tenant context missing")
	}

	days, err := s.repo.Day.FindAll(ctx, tenant.ID)
	if err != nil {
		return nil, fmt.Errorf("list days: %w", err)
	}

	responses := make([]response.DayResponse, len(days))
	for i, day := range days {
		slots, err := s.repo.Slot.FindActiveByDay(ctx, tenant.ID, day.ID)
		if err != nil {
			return nil, fmt.Errorf("load slots for %s: %w", day.Key, err)
		}
		responses[i] = response.DayToResponse(day, slots)
	}

	return responses, nil
}

func (s *scheduleService) UpdateDayStatus(ctx context.Context, dayID string, req *request.UpdateActiveRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	tenant, ok := utils.GetTenantFromContext(ctx)
	if !ok {
		return fmt.Errorf("tenant context missing")
	}

	id, err := uuid.Parse(dayID)
	if err != nil {
		return fmt.Errorf("invalid day ID format %s: %w", dayID, err)
	}

	day, err := s.repo.Day.FindByID(ctx, tenant.ID, id)
	if err != nil {
		return fmt.Errorf("load day: %w", err)
	}
	if day == nil {
		return fmt.Errorf("day %s not found", dayID)
	}

	if err := s.repo.Day.UpdateStatus(ctx, tenant.ID, id, *req.IsActive); err != nil {
		return err
	}

	s.log.Info("Day status updated",
		zap.String("day", day.Key),
		zap.Bool("is_active", *req.IsActive),
	)
	return nil
}

func (s *scheduleService) CreateSlot(ctx context.Context, req *request.CreateSlotRequest) (*response.SlotResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create slot validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	tenant, ok := utils.GetTenantFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("tenant context missing")
	}

	dayID, err := uuid.Parse(req.DayID)
	if err != nil {
		return nil, fmt.Errorf("invalid day ID format %s: %w", req.DayID, err)
	}

	day, err := s.repo.Day.FindByID(ctx, tenant.ID, dayID)
	if err != nil {
		return nil, fmt.Errorf("load day: %w", err)
	}
	if day == nil {
		return nil, fmt.Errorf("day %s not found", req.DayID)
	}

	timeRange, err := timeslot.ParseRange(req.TimeRange)
	if err != nil {
		return nil, fmt.Errorf("invalid time range: %w", err)
	}

	var dayTypeID *uuid.UUID
	if req.DayTypeID != nil {
		id, err := uuid.Parse(*req.DayTypeID)
		if err != nil {
			return nil, fmt.Errorf("invalid day type ID format %s: %w", *req.DayTypeID, err)
		}
		dayType, err := s.repo.DayType.FindByID(ctx, tenant.ID, id)
		if err != nil {
			return nil, fmt.Errorf("load day type: %w", err)
		}
		if dayType == nil {
			return nil, fmt.Errorf("day type %s not found", *req.DayTypeID)
		}
		dayTypeID = &id
	}

	existing, err := s.repo.Slot.FindByDayAndRange(ctx, tenant.ID, dayID, timeRange)
	if err != nil {
		return nil, fmt.Errorf("check slot: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("slot %s already exists on %s", timeRange.String(), day.Key)
	}

	now := s.clock.Now()
	slot := &entity.ScheduleSlot{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TenantID:      tenant.ID,
		DayID:         dayID,
		TimeRange:     timeRange,
		DayTypeID:     dayTypeID,
		AllowMultiple: req.AllowMultiple,
		IsActive:      true,
	}

	if err := s.repo.Slot.Create(ctx, slot); err != nil {
		return nil, err
	}

	s.log.Info("Slot created",
		zap.String("slot_id", slot.ID.String()),
		zap.String("day", day.Key),
		zap.String("time_range", timeRange.String()),
	)

	resp := response.SlotToResponse(slot)
	return &resp, nil
}

func (s *scheduleService) UpdateSlotStatus(ctx context.Context, slotID string, req *request.UpdateActiveRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	tenant, ok := utils.GetTenantFromContext(ctx)
	if !ok {
		return fmt.Errorf("tenant context missing")
	}

	id, err := uuid.Parse(slotID)
	if err != nil {
		return fmt.Errorf("invalid slot ID format %s: %w", slotID, err)
	}

	slot, err := s.repo.Slot.FindByID(ctx, tenant.ID, id)
	if err != nil {
		return fmt.Errorf("load slot: %w", err)
	}
	if slot == nil {
		return fmt.Errorf("slot %s not found", slotID)
	}

	if err := s.repo.Slot.UpdateStatus(ctx, tenant.ID, id, *req.IsActive); err != nil {
		return err
	}

	s.log.Info("Slot status updated",
		zap.String("slot_id", slotID),
		zap.Bool("is_active", *req.IsActive),
	)
	return nil
}

func (s *scheduleService) ListDayTypes(ctx context.Context) ([]response.DayTypeResponse, error) {
	tenant, ok := utils.GetTenantFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("tenant context missing")
	}

	dayTypes, err := s.repo.DayType.FindAllActive(ctx, tenant.ID)
	if err != nil {
		return nil, fmt.Errorf("list day types: %w", err)
	}

	responses := make([]response.DayTypeResponse, len(dayTypes))
	for i, dayType := range dayTypes {
		responses[i] = response.DayTypeResponse{
			ID:       dayType.ID.String(),
			Title:    dayType.Title,
			IsActive: dayType.IsActive,
		}
	}

	return responses, nil
}
