package repository

import (
	"context"
	"fmt"
	"strings"

	"appointment-booking/internal/data/entity"
	"appointment-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CouponRepository interface {
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*entity.Coupon, error)
}

type couponRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCouponRepository(db database.PgxIface, log *zap.Logger) CouponRepository {
	return &couponRepository{
		db:  db,
		log: log.With(zap.String("repository", "coupon")),
	}
}

func (r *couponRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*entity.Coupon, error) {
	query := `
		SELECT id, tenant_id, code, discount_type, value, expires_at, is_active, created_at, updated_at
		FROM coupons
		WHERE tenant_id = $1 AND code = $2
	`

	var coupon entity.Coupon
	err := r.db.QueryRow(ctx, query, tenantID, strings.ToUpper(strings.TrimSpace(code))).Scan(
		&coupon.ID,
		&coupon.TenantID,
		&coupon.Code,
		&coupon.DiscountType,
		&coupon.Value,
		&coupon.ExpiresAt,
		&coupon.IsActive,
		&coupon.CreatedAt,
		&coupon.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find coupon by code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find coupon by code %s: %w", code, err)
	}

	return &coupon, nil
}
