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

type DayTypeRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.DayType, error)
	FindAllActive(ctx context.Context, tenantID uuid.UUID) ([]*entity.DayType, error)
}

type dayTypeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewDayTypeRepository(db database.PgxIface, log *zap.Logger) DayTypeRepository {
	return &dayTypeRepository{
		db:  db,
		log: log.With(zap.String("repository", "day_type")),
	}
}

func (r *dayTypeRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.DayType, error) {
	query := `
		SELECT id, tenant_id, title, is_active, created_at, updated_at
		FROM day_types
		WHERE tenant_id = $1 AND id = $2
	`

	var dayType entity.DayType
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(
		&dayType.ID,
		&dayType.TenantID,
		&dayType.Title,
		&dayType.IsActive,
		&dayType.CreatedAt,
		&dayType.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find day type by ID",
			zap.Error(err),
			zap.String("day_type_id", id.String()),
		)
		return nil, fmt.Errorf("find day type by ID %s: %w", id.String(), err)
	}

	return &dayType, nil
}

func (r *dayTypeRepository) FindAllActive(ctx context.Context, tenantID uuid.UUID) ([]*entity.DayType, error) {
	query := `
		SELECT id, tenant_id, title, is_active, created_at, updated_at
		FROM day_types
		WHERE tenant_id = $1 AND is_active = true
		ORDER BY title
	`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		r.log.Error("Failed to find day types",
			zap.Error(err),
			zap.String("tenant_id", tenantID.String()),
		)
		return nil, fmt.Errorf("find day types for tenant %s: %w", tenantID.String(), err)
	}
	defer rows.Close()

	var dayTypes []*entity.DayType
	for rows.Next() {
		var dayType entity.DayType
		err := rows.Scan(
			&dayType.ID,
			&dayType.TenantID,
			&dayType.Title,
			&dayType.IsActive,
			&dayType.CreatedAt,
			&dayType.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan day type row", zap.Error(err))
			return nil, fmt.Errorf("scan day type row: %w", err)
		}
		dayTypes = append(dayTypes, &dayType)
	}

	return dayTypes, nil
}
