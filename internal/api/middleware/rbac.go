package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hydrostat/auth-service/internal/api/metrics"
	"github.com/hydrostat/auth-service/internal/core/domain"
)

// RBAC enforces role-based access control. A missing identity short-circuits
// to 401 before any role check; an authenticated identity outside the allowed
// set gets 403.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, _ := c.Get(identityKey).(*domain.Identity)
			if identity == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if _, ok := allowed[identity.Role]; !ok {
				metrics.FailuresTotal.WithLabelValues("forbidden").Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
