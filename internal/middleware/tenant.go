package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"retail-backoffice/internal/tenant"
)

// TenantMiddleware resolves the tenant from the X-Tenant-Id header and puts
// it on the request context. Tenancy is always explicit; nothing downstream
// reads ambient state.
func TenantMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tenantID := c.Request().Header.Get("X-Tenant-Id")
			if tenantID == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "missing X-Tenant-Id header")
			}

			ctx := tenant.WithID(c.Request().Context(), tenantID)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
