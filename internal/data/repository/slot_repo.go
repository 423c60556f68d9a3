package repository

import (
	"context"
	"fmt"

	"appointment-booking/internal/data/entity"
	"appointment-booking/internal/timeslot"
	"appointment-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SlotRepository interface {
	Create(ctx context.Context, slot *entity.ScheduleSlot) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.ScheduleSlot, error)
	FindActiveByDay(ctx context.Context, tenantID, dayID uuid.UUID) ([]*entity.ScheduleSlot, error)
	FindByDayAndRange(ctx context.Context, tenantID, dayID uuid.UUID, timeRange timeslot.Range) (*entity.ScheduleSlot, error)
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, isActive bool) error
}

type slotRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSlotRepository(db database.PgxIface, log *zap.Logger) SlotRepository {
	return &slotRepository{
		db:  db,
		log: log.With(zap.String("repository", "slot")),
	}
}

const slotColumns = `id, tenant_id, day_id, time_range, day_type_id, allow_multiple, is_active, created_at, updated_at`

// scanSlot parses the stored "HH:MM - HH:MM" wire format into the structured
// range; a malformed stored value surfaces as an error, not a silent skip.
func scanSlot(row pgx.Row) (*entity.ScheduleSlot, error) {
	var slot entity.ScheduleSlot
	var rangeStr string

	err := row.Scan(
		&slot.ID,
		&slot.TenantID,
		&slot.DayID,
		&rangeStr,
		&slot.DayTypeID,
		&slot.AllowMultiple,
		&slot.IsActive,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.TimeRange, err = timeslot.ParseRange(rangeStr)
	if err != nil {
		return nil, fmt.Errorf("slot %s: %w", slot.ID.String(), err)
	}

	return &slot, nil
}

func (r *slotRepository) Create(ctx context.Context, slot *entity.ScheduleSlot) error {
	query := `
		INSERT INTO schedule_slots (id, tenant_id, day_id, time_range, day_type_id, allow_multiple, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		slot.ID,
		slot.TenantID,
		slot.DayID,
		slot.TimeRange.String(),
		slot.DayTypeID,
		slot.AllowMultiple,
		slot.IsActive,
		slot.CreatedAt,
		slot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create slot",
			zap.Error(err),
			zap.String("day_id", slot.DayID.String()),
			zap.String("time_range", slot.TimeRange.String()),
		)
		return fmt.Errorf("create slot %s: %w", slot.TimeRange.String(), err)
	}

	return nil
}

func (r *slotRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.ScheduleSlot, error) {
	query := fmt.Sprintf(`SELECT %s FROM schedule_slots WHERE tenant_id = $1 AND id = $2`, slotColumns)

	slot, err := scanSlot(r.db.QueryRow(ctx, query, tenantID, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find slot by ID",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("find slot by ID %s: %w", id.String(), err)
	}

	return slot, nil
}

func (r *slotRepository) FindActiveByDay(ctx context.Context, tenantID, dayID uuid.UUID) ([]*entity.ScheduleSlot, error) {
	// time_range starts with zero-padded "HH:MM" so lexical order is start-time order
	query := fmt.Sprintf(`
		SELECT %s FROM schedule_slots
		WHERE tenant_id = $1 AND day_id = $2 AND is_active = true
		ORDER BY time_range
	`, slotColumns)

	rows, err := r.db.Query(ctx, query, tenantID, dayID)
	if err != nil {
		r.log.Error("Failed to find slots by day",
			zap.Error(err),
			zap.String("day_id", dayID.String()),
		)
		return nil, fmt.Errorf("find slots by day %s: %w", dayID.String(), err)
	}
	defer rows.Close()

	var slots []*entity.ScheduleSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			r.log.Error("Failed to scan slot row", zap.Error(err))
			return nil, fmt.Errorf("scan slot row: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

func (r *slotRepository) FindByDayAndRange(ctx context.Context, tenantID, dayID uuid.UUID, timeRange timeslot.Range) (*entity.ScheduleSlot, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM schedule_slots
		WHERE tenant_id = $1 AND day_id = $2 AND time_range = $3 AND is_active = true
	`, slotColumns)

	slot, err := scanSlot(r.db.QueryRow(ctx, query, tenantID, dayID, timeRange.String()))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find slot by day and range",
			zap.Error(err),
			zap.String("day_id", dayID.String()),
			zap.String("time_range", timeRange.String()),
		)
		return nil, fmt.Errorf("find slot %s: %w", timeRange.String(), err)
	}

	return slot, nil
}

func (r *slotRepository) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, isActive bool) error {
	query := `UPDATE schedule_slots SET is_active = $3, updated_at = NOW() WHERE tenant_id = $1 AND id = $2`

	result, err := r.db.Exec(ctx, query, tenantID, id, isActive)
	if err != nil {
		r.log.Error("Failed to update slot status",
			zap.Error(err),
			zap.String("slot_id", id.String()),
			zap.Bool("is_active", isActive),
		)
		return fmt.Errorf("update slot %s status: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot %s not found", id.String())
	}

	return nil
}
