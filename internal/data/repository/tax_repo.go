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

type TaxRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Tax, error)
}

type taxRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTaxRepository(db database.PgxIface, log *zap.Logger) TaxRepository {
	return &taxRepository{
		db:  db,
		log: log.With(zap.String("repository", "tax")),
	}
}

func (r *taxRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Tax, error) {
	query := `
		SELECT id, tenant_id, name, tax_type, percentage, is_active, created_at, updated_at
		FROM taxes
		WHERE tenant_id = $1 AND id = $2
	`

	var tax entity.Tax
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(
		&tax.ID,
		&tax.TenantID,
		&tax.Name,
		&tax.Type,
		&tax.Percentage,
		&tax.IsActive,
		&tax.CreatedAt,
		&tax.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tax by ID",
			zap.Error(err),
			zap.String("tax_id", id.String()),
		)
		return nil, fmt.Errorf("find tax by ID %s: %w", id.String(), err)
	}

	return &tax, nil
}
