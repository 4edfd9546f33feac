package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hydrostat/auth-service/internal/core/ports"
)

// identityKey must match the key the handler package reads the identity from.
const identityKey = "identity"

// Auth admits the request through the auth engine: bearer extraction, access
// token verification, and a fresh user lookup. The resulting identity is
// stored in the echo context for handlers and the role gate.
func Auth(authService ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
			}

			identity, err := authService.Authenticate(c.Request().Context(), authHeader)
			if err != nil {
				return err
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// OptionalAuth attaches an identity when a valid token is present and
// proceeds anonymously otherwise. It uses the same authenticate path as Auth,
// so the attached identity carries the freshly fetched role, never stale
// token claims.
func OptionalAuth(authService ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader != "" {
				if identity, err := authService.Authenticate(c.Request().Context(), authHeader); err == nil {
					c.Set(identityKey, identity)
				}
			}
			return next(c)
		}
	}
}
