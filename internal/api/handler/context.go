package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hydrostat/auth-service/internal/core/domain"
)

// identityKey is the echo context key under which the auth middleware stores
// the request's authenticated identity.
const identityKey = "identity"

// ctxIdentity extracts the identity injected by the auth middleware. Absence
// means the middleware did not run or did not authenticate; the request is
// rejected before any role check.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	identity, _ := c.Get(identityKey).(*domain.Identity)
	if identity == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return identity, nil
}
