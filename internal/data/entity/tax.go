package entity

import (
	"appointment-booking/internal/pricing"

	"github.com/google/uuid"
)

// Tax is a tenant tax rate. Type is inclusive (extracted from the price) or
// exclusive (added on top).
type Tax struct {
	Base
	TenantID   uuid.UUID       `db:"tenant_id"`
	Name       string          `db:"name"`
	Type       pricing.TaxType `db:"tax_type"`
	Percentage float64         `db:"percentage"`
	IsActive   bool            `db:"is_active"`
}
