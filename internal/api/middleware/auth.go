package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/townboard/townboard-api/internal/api/metrics"
	"github.com/townboard/townboard-api/internal/core/domain"
	"github.com/townboard/townboard-api/internal/core/ports"
)

const principalKey = "principal"

// Auth validates the bearer token and injects the caller's principal into the
// context. It never calls next on failure.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.AccessDeniedTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrMissingToken
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				metrics.AccessDeniedTotal.WithLabelValues("malformed_token").Inc()
				return domain.ErrMalformedToken
			}

			principal, err := verifier.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				metrics.AccessDeniedTotal.WithLabelValues("invalid_token").Inc()
				if !errors.Is(err, domain.ErrUnauthenticated) {
					err = domain.ErrInvalidToken
				}
				return err
			}

			SetPrincipal(c, principal)
			return next(c)
		}
	}
}

// SetPrincipal attaches p to c and to its request context.
func SetPrincipal(c echo.Context, p domain.Principal) {
	c.Set(principalKey, p)
	req := c.Request()
	c.SetRequest(req.WithContext(domain.WithPrincipal(req.Context(), p)))
}

// PrincipalFrom returns the principal attached by Auth, if any.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	if !ok || !p.Authenticated() {
		return domain.Principal{}, false
	}
	return p, true
}
