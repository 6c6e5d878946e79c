package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/townboard/townboard-api/internal/api/middleware"
	"github.com/townboard/townboard-api/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware and
// fails fast before any service call when it is absent.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.Principal{}, domain.ErrMissingPrincipal
	}
	return p, nil
}

// bindAndValidate decodes the request body into req and runs the registered
// validator over it.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.Invalid("invalid payload")
	}
	return c.Validate(req)
}
