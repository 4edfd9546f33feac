package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hydrostat/auth-service/internal/core/domain"
	"github.com/hydrostat/auth-service/internal/core/ports"
)

type stubAuthService struct {
	authenticateFn func(ctx context.Context, authHeader string) (*domain.Identity, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, *domain.TokenPair, error) {
	panic("not used")
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.User, *domain.TokenPair, error) {
	panic("not used")
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	panic("not used")
}

func (s *stubAuthService) Authenticate(ctx context.Context, authHeader string) (*domain.Identity, error) {
	return s.authenticateFn(ctx, authHeader)
}

func (s *stubAuthService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	panic("not used")
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		authenticateFn: func(_ context.Context, authHeader string) (*domain.Identity, error) {
			if authHeader != "Bearer good-token" {
				t.Fatalf("unexpected header: %q", authHeader)
			}
			return &domain.Identity{UserID: "u1", Email: "ann@example.com", Role: domain.RoleViewer}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(stub)(func(c echo.Context) error {
		called = true
		identity, _ := c.Get(identityKey).(*domain.Identity)
		if identity == nil || identity.Email != "ann@example.com" {
			t.Fatalf("identity not set: %+v", identity)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		authenticateFn: func(context.Context, string) (*domain.Identity, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(stub)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		authenticateFn: func(context.Context, string) (*domain.Identity, error) {
			return nil, domain.ErrInvalidToken
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(stub)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	if err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken to propagate, got %v", err)
	}
}

func TestOptionalAuth_NoHeader(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		authenticateFn: func(context.Context, string) (*domain.Identity, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := OptionalAuth(stub)(func(c echo.Context) error {
		if c.Get(identityKey) != nil {
			t.Fatalf("identity should not be set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOptionalAuth_BadTokenProceedsAnonymously(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		authenticateFn: func(context.Context, string) (*domain.Identity, error) {
			return nil, domain.ErrInvalidToken
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer stale")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := OptionalAuth(stub)(func(c echo.Context) error {
		if c.Get(identityKey) != nil {
			t.Fatalf("identity should not be set for invalid token")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOptionalAuth_ValidToken(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		authenticateFn: func(context.Context, string) (*domain.Identity, error) {
			return &domain.Identity{UserID: "u1", Email: "a@x.com", Role: domain.RoleAdmin}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := OptionalAuth(stub)(func(c echo.Context) error {
		identity, _ := c.Get(identityKey).(*domain.Identity)
		if identity == nil || identity.Role != domain.RoleAdmin {
			t.Fatalf("identity not attached: %+v", identity)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
