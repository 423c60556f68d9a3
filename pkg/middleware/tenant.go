package middleware

import (
	"net/http"
	"time"

	"appointment-booking/internal/data/repository"
	"appointment-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Tenant resolves the X-Tenant-ID header into a TenantContext and injects it
// into the request context. Every tenant-scoped route sits behind this.
func Tenant(repo repository.TenantRepository, defaultTimezone string, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenantHeader := r.Header.Get("X-Tenant-ID")
			if tenantHeader == "" {
				utils.ResponseBadRequest(w, "X-Tenant-ID header is required", nil)
				return
			}

			tenantID, err := uuid.Parse(tenantHeader)
			if err != nil {
				utils.ResponseBadRequest(w, "Invalid tenant ID format", nil)
				return
			}

			tenant, err := repo.FindByID(r.Context(), tenantID)
			if err != nil {
				log.Error("Failed to resolve tenant",
					zap.Error(err),
					zap.String("tenant_id", tenantHeader),
				)
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if tenant == nil {
				utils.ResponseNotFound(w, "Tenant not found")
				return
			}
			if !tenant.IsActive {
				utils.ResponseForbidden(w, "Tenant is not active")
				return
			}

			timezone := tenant.Timezone
			if timezone == "" {
				timezone = defaultTimezone
			}

			location, err := time.LoadLocation(timezone)
			if err != nil {
				log.Warn("Unknown tenant timezone, falling back to default",
					zap.String("tenant_id", tenantHeader),
					zap.String("timezone", timezone),
				)
				location, err = time.LoadLocation(defaultTimezone)
				if err != nil {
					location = time.UTC
				}
			}

			ctx := utils.SetTenantContext(r.Context(), utils.TenantContext{
				ID:       tenant.ID,
				Name:     tenant.Name,
				Timezone: timezone,
				Location: location,
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
