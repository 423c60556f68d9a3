package entity

type Tenant struct {
	Base
	Name     string `db:"name"`
	Timezone string `db:"timezone"`
	IsActive bool   `db:"is_active"`
}
