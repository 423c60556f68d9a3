package entity

import (
	"github.com/google/uuid"
)

// Day is one weekday of a tenant's weekly schedule. Key is the lowercase
// weekday name ("monday".."sunday"), unique per tenant, at most 7 rows.
type Day struct {
	Base
	TenantID uuid.UUID `db:"tenant_id"`
	Key      string    `db:"day_key"`
	Label    string    `db:"label"`
	IsActive bool      `db:"is_active"`
}

// DayType is an optional grouping bucket for slots (Morning/Afternoon/Evening).
type DayType struct {
	Base
	TenantID uuid.UUID `db:"tenant_id"`
	Title    string    `db:"title"`
	IsActive bool      `db:"is_active"`
}
