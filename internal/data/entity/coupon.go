package entity

import (
	"time"

	"github.com/google/uuid"
)

type DiscountType string

const (
	DiscountTypePercent DiscountType = "percent"
	DiscountTypeFixed   DiscountType = "fixed"
)

// Coupon backs the pricing discount hook. An expired or inactive coupon is
// treated as no discount, not as an error.
type Coupon struct {
	Base
	TenantID     uuid.UUID    `db:"tenant_id"`
	Code         string       `db:"code"`
	DiscountType DiscountType `db:"discount_type"`
	Value        float64      `db:"value"`
	ExpiresAt    *time.Time   `db:"expires_at"`
	IsActive     bool         `db:"is_active"`
}

// IsUsable reports whether the coupon can discount a booking made at now.
func (c *Coupon) IsUsable(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.ExpiresAt != nil && c.ExpiresAt.Before(now) {
		return false
	}
	return true
}
