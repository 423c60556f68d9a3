package utils

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const (
	TenantKey contextKey = "tenant"
)

// TenantContext carries the resolved tenant identity and timezone through a
// request. It is always passed explicitly via context, never held globally.
type TenantContext struct {
	ID       uuid.UUID
	Name     string
	Timezone string
	Location *time.Location
}

func SetTenantContext(ctx context.Context, tenant TenantContext) context.Context {
	return context.WithValue(ctx, TenantKey, tenant)
}

func GetTenantFromContext(ctx context.Context) (TenantContext, bool) {
	tenantVal := ctx.Value(TenantKey)
	if tenantVal == nil {
		return TenantContext{}, false
	}

	tenant, ok := tenantVal.(TenantContext)
	return tenant, ok
}
