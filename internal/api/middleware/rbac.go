package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/townboard/townboard-api/internal/api/metrics"
	"github.com/townboard/townboard-api/internal/core/domain"
)

// RequireRole enforces role-based access control. It must run after Auth.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return domain.ErrMissingPrincipal
			}
			if _, ok := allowed[p.Role]; !ok {
				metrics.AccessDeniedTotal.WithLabelValues("role").Inc()
				return domain.ErrRoleRequired
			}
			return next(c)
		}
	}
}
