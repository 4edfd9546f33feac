package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hydrostat/auth-service/internal/api/metrics"
	"github.com/hydrostat/auth-service/internal/core/ports"
)

// LoginThrottle limits repeated failed logins per email. Implementations must
// fail open: a throttle backend outage must not lock out logins.
type LoginThrottle interface {
	TooMany(ctx context.Context, email string) bool
	RecordFailure(ctx context.Context, email string)
	Reset(ctx context.Context, email string)
}

type AuthHandler struct {
	authService ports.AuthService
	throttle    LoginThrottle
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, throttle LoginThrottle, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, throttle: throttle, log: log}
}

// Register creates a new user account and issues its first token pair.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.FailuresTotal.WithLabelValues("invalid_input").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	user, tokens, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	metrics.TokenIssueDuration.WithLabelValues("register").Observe(time.Since(start).Seconds())
	metrics.RegistrationsTotal.WithLabelValues(string(user.Role)).Inc()

	h.log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("user registered")

	return c.JSON(http.StatusCreated, authResponse{
		Message: "user registered successfully",
		User:    user,
		Tokens:  tokens,
	})
}

// Login authenticates a user and returns a fresh token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.FailuresTotal.WithLabelValues("invalid_input").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if h.throttle != nil && h.throttle.TooMany(ctx, req.Email) {
		metrics.FailuresTotal.WithLabelValues("throttled").Inc()
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many failed login attempts")
	}

	start := time.Now()
	user, tokens, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		if h.throttle != nil {
			h.throttle.RecordFailure(ctx, req.Email)
		}
		return err
	}
	metrics.TokenIssueDuration.WithLabelValues("login").Observe(time.Since(start).Seconds())
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	if h.throttle != nil {
		h.throttle.Reset(ctx, req.Email)
	}

	h.log.Info().Str("email", user.Email).Msg("user logged in")

	return c.JSON(http.StatusOK, authResponse{
		Message: "login successful",
		User:    user,
		Tokens:  tokens,
	})
}

// Refresh exchanges a valid refresh token for a brand-new token pair.
//
// @Summary      Refresh tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.FailuresTotal.WithLabelValues("invalid_input").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	tokens, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.TokenIssueDuration.WithLabelValues("refresh").Observe(time.Since(start).Seconds())
	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, authResponse{
		Message: "token refreshed successfully",
		Tokens:  tokens,
	})
}

// Me returns the authenticated user's record.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.authService.GetUserByID(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{User: user})
}

// Logout acknowledges a logout. Tokens are stateless bearer credentials with
// no server-side table, so there is nothing to revoke; clients discard their
// copies.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "logout successful"})
}
