package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/townboard/townboard-api/internal/core/domain"
	"github.com/townboard/townboard-api/internal/core/service"
)

const testSecret = "middleware-test-secret"

func signedToken(t *testing.T, role domain.Role) string {
	t.Helper()
	issuer := service.NewTokenIssuer(testSecret, time.Hour, "")
	token, err := issuer.Issue(&domain.User{ID: "user_1", Role: role})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func runAuth(t *testing.T, header string) (bool, domain.Principal, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var (
		called bool
		got    domain.Principal
	)
	mw := Auth(service.NewTokenIssuer(testSecret, time.Hour, ""))
	err := mw(func(c echo.Context) error {
		called = true
		got, _ = PrincipalFrom(c)
		if fromCtx, ok := domain.PrincipalFromContext(c.Request().Context()); !ok || fromCtx != got {
			t.Fatalf("principal not propagated to request context")
		}
		return c.NoContent(http.StatusOK)
	})(c)
	return called, got, err
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	called, p, err := runAuth(t, "Bearer "+signedToken(t, domain.RoleBusiness))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if p.UserID != "user_1" || p.Role != domain.RoleBusiness {
		t.Fatalf("unexpected principal: %+v", p)
	}
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	called, _, err := runAuth(t, "bearer "+signedToken(t, domain.RoleLocal))
	if err != nil || !called {
		t.Fatalf("expected lowercase scheme to be accepted, err=%v", err)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	called, _, err := runAuth(t, "")
	if called {
		t.Fatalf("should not reach next")
	}
	if !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	for _, header := range []string{"Token abc", "Bearer", "Bearer   ", "abc"} {
		called, _, err := runAuth(t, header)
		if called {
			t.Fatalf("%q: should not reach next", header)
		}
		if !errors.Is(err, domain.ErrMalformedToken) {
			t.Fatalf("%q: expected ErrMalformedToken, got %v", header, err)
		}
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	called, _, err := runAuth(t, "Bearer not-a-token")
	if called {
		t.Fatalf("should not reach next")
	}
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	other := service.NewTokenIssuer("a-completely-different-secret", time.Hour, "")
	token, err := other.Issue(&domain.User{ID: "user_1", Role: domain.RoleLocal})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	called, _, err := runAuth(t, "Bearer "+token)
	if called {
		t.Fatalf("should not reach next")
	}
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
