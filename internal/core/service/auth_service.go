package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/hydrostat/auth-service/internal/core/domain"
	"github.com/hydrostat/auth-service/internal/core/ports"
)

// Limits holds the externally configured validation thresholds.
type Limits struct {
	PasswordMinLen int
	NameMinLen     int
	DefaultRole    domain.Role
}

// AuthService implements registration, login, token refresh and per-request
// authentication. It holds no mutable state; concurrency safety reduces to
// the repository's own atomicity.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	codec  ports.TokenCodec
	audit  ports.AuditRecorder
	limits Limits
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, codec ports.TokenCodec, audit ports.AuditRecorder, limits Limits) *AuthService {
	if limits.PasswordMinLen <= 0 {
		limits.PasswordMinLen = 6
	}
	if limits.NameMinLen <= 0 {
		limits.NameMinLen = 2
	}
	if limits.DefaultRole == "" {
		limits.DefaultRole = domain.DefaultRole
	}
	return &AuthService{repo: repo, hasher: hasher, codec: codec, audit: audit, limits: limits}
}

// Register creates a new identity and issues its first token pair. Email
// uniqueness is enforced twice: a lookup for the common case and the store's
// unique index for the concurrent one.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, *domain.TokenPair, error) {
	role, err := s.validateRegister(in)
	if err != nil {
		s.record(domain.AuditRegister, in.Email, "", err)
		return nil, nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		s.record(domain.AuditRegister, in.Email, "", domain.ErrUserExists)
		return nil, nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		s.record(domain.AuditRegister, in.Email, "", err)
		return nil, nil, err
	}

	pair, err := s.issuePair(created)
	if err != nil {
		return nil, nil, err
	}

	s.record(domain.AuditRegister, created.Email, created.ID, nil)
	return created, pair, nil
}

// Login verifies credentials and issues a fresh token pair. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *domain.TokenPair, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.record(domain.AuditLogin, email, "", domain.ErrInvalidCredentials)
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Compare(password, user.PasswordHash) {
		s.record(domain.AuditLogin, email, user.ID, domain.ErrInvalidCredentials)
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}

	s.record(domain.AuditLogin, user.Email, user.ID, nil)
	return user, pair, nil
}

// Refresh mints a brand-new token pair from a valid refresh token. The user
// record is re-fetched so the new pair reflects the current role and email,
// not the claims frozen at issuance. A vanished user is indistinguishable
// from a bad token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.codec.Verify(refreshToken, domain.TokenRefresh)
	if err != nil {
		s.record(domain.AuditRefresh, "", "", domain.ErrInvalidToken)
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.record(domain.AuditRefresh, claims.Email, claims.UserID, domain.ErrInvalidToken)
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}

	s.record(domain.AuditRefresh, user.Email, user.ID, nil)
	return pair, nil
}

// Authenticate admits a request from its Authorization header value. The
// header must be exactly "Bearer <token>"; the token must verify as
// access-kind; the user must still exist. The identity is built from the
// re-fetched record, never from the token's claims.
func (s *AuthService) Authenticate(ctx context.Context, authHeader string) (*domain.Identity, error) {
	token, ok := bearerToken(authHeader)
	if !ok {
		return nil, domain.ErrInvalidToken
	}

	claims, err := s.codec.Verify(token, domain.TokenAccess)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &domain.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}

// GetUserByID resolves a user by its opaque id.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AuthService) validateRegister(in ports.RegisterInput) (domain.Role, error) {
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return "", fmt.Errorf("%w: email must be a valid address", domain.ErrInvalidInput)
	}
	if len(in.Password) < s.limits.PasswordMinLen {
		return "", fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, s.limits.PasswordMinLen)
	}
	if len(in.Name) < s.limits.NameMinLen {
		return "", fmt.Errorf("%w: name must be at least %d characters", domain.ErrInvalidInput, s.limits.NameMinLen)
	}
	if in.Role == "" {
		return s.limits.DefaultRole, nil
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return "", fmt.Errorf("%w: role must be one of admin, analyst, viewer", domain.ErrInvalidInput)
	}
	return role, nil
}

func (s *AuthService) issuePair(user *domain.User) (*domain.TokenPair, error) {
	claims := domain.Claims{UserID: user.ID, Email: user.Email, Role: user.Role}

	access, err := s.codec.Issue(claims, domain.TokenAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := s.codec.Issue(claims, domain.TokenRefresh)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) record(action domain.AuditAction, email, userID string, cause error) {
	if s.audit == nil {
		return
	}
	event := domain.AuditEvent{
		Action:  action,
		Email:   email,
		UserID:  userID,
		Outcome: domain.AuditOutcomeSuccess,
		At:      time.Now().UTC(),
	}
	if cause != nil {
		event.Outcome = domain.AuditOutcomeFailure
		event.Reason = cause.Error()
	}
	s.audit.Enqueue(event)
}

// bearerToken extracts the token from an Authorization header value of the
// exact form "Bearer <token>".
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
