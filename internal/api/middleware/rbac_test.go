package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hydrostat/auth-service/internal/core/domain"
)

func identityContext(e *echo.Echo, role domain.Role) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set(identityKey, &domain.Identity{UserID: "u1", Email: "a@x.com", Role: role})
	}
	return c, rec
}

func TestRBAC_Allows(t *testing.T) {
	e := echo.New()
	c, rec := identityContext(e, domain.RoleAnalyst)

	called := false
	handler := RBAC(domain.RoleAdmin, domain.RoleAnalyst)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_Forbids(t *testing.T) {
	e := echo.New()
	c, _ := identityContext(e, domain.RoleViewer)

	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

// A missing identity must read as unauthenticated, not forbidden: the role
// check never runs without a principal.
func TestRBAC_MissingIdentityIsUnauthorized(t *testing.T) {
	e := echo.New()
	c, _ := identityContext(e, "")

	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
