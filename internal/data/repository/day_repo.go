package repository

import (
	"context"
	"fmt"

	"appointment-booking/internal/data/entity"
	"appointment-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type DayRepository interface {
	FindByKey(ctx context.Context, tenantID uuid.UUID, key string) (*entity.Day, error)
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Day, error)
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]*entity.Day, error)
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, isActive bool) error
}

type dayRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewDayRepository(db database.PgxIface, log *zap.Logger) DayRepository {
	return &dayRepository{
		db:  db,
		log: log.With(zap.String("repository", "day")),
	}
}

func (r *dayRepository) FindByKey(ctx context.Context, tenantID uuid.UUID, key string) (*entity.Day, error) {
	query := `
		SELECT id, tenant_id, day_key, label, is_active, created_at, updated_at
		FROM days
		WHERE tenant_id = $1 AND day_key = $2
	`

	var day entity.Day
	err := r.db.QueryRow(ctx, query, tenantID, key).Scan(
		&day.ID,
		&day.TenantID,
		&day.Key,
		&day.Label,
		&day.IsActive,
		&day.CreatedAt,
		&day.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find day by key",
			zap.Error(err),
			zap.String("tenant_id", tenantID.String()),
			zap.String("day_key", key),
		)
		return nil, fmt.Errorf("find day by key %s: %w", key, err)
	}

	return &day, nil
}

func (r *dayRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Day, error) {
	query := `
		SELECT id, tenant_id, day_key, label, is_active, created_at, updated_at
		FROM days
		WHERE tenant_id = $1 AND id = $2
	`

	var day entity.Day
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(
		&day.ID,
		&day.TenantID,
		&day.Key,
		&day.Label,
		&day.IsActive,
		&day.CreatedAt,
		&day.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find day by ID",
			zap.Error(err),
			zap.String("day_id", id.String()),
		)
		return nil, fmt.Errorf("find day by ID %s: %w", id.String(), err)
	}

	return &day, nil
}

func (r *dayRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]*entity.Day, error) {
	query := `
		SELECT id, tenant_id, day_key, label, is_active, created_at, updated_at
		FROM days
		WHERE tenant_id = $1
		ORDER BY CASE day_key
			WHEN 'monday' THEN 1
			WHEN 'tuesday' THEN 2
			WHEN 'wednesday' THEN 3
			WHEN 'thursday' THEN 4
			WHEN 'friday' THEN 5
			WHEN 'saturday' THEN 6
			WHEN 'sunday' THEN 7
		END
	`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		r.log.Error("Failed to find days",
			zap.Error(err),
			zap.String("tenant_id", tenantID.String()),
		)
		return nil, fmt.Errorf("find days for tenant %s: %w", tenantID.String(), err)
	}
	defer rows.Close()

	var days []*entity.Day
	for rows.Next() {
		var day entity.Day
		err := rows.Scan(
			&day.ID,
			&day.TenantID,
			&day.Key,
			&day.Label,
			&day.IsActive,
			&day.CreatedAt,
			&day.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan day row", zap.Error(err))
			return nil, fmt.Errorf("scan day row: %w", err)
		}
		days = append(days, &day)
	}

	return days, nil
}

func (r *dayRepository) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, isActive bool) error {
	query := `UPDATE days SET is_active = $3, updated_at = NOW() WHERE tenant_id = $1 AND id = $2`

	result, err := r.db.Exec(ctx, query, tenantID, id, isActive)
	if err != nil {
		r.log.Error("Failed to update day status",
			zap.Error(err),
			zap.String("day_id", id.String()),
			zap.Bool("is_active", isActive),
		)
		return fmt.Errorf("update day %s status: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("day %s not found", id.String())
	}

	return nil
}
