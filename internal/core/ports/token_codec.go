package ports

import "github.com/hydrostat/auth-service/internal/core/domain"

// TokenCodec signs and verifies self-contained expiring bearer tokens. Verify
// collapses every failure mode into domain.ErrInvalidToken.
type TokenCodec interface {
	Issue(claims domain.Claims, kind domain.TokenKind) (string, error)
	Verify(token string, kind domain.TokenKind) (*domain.Claims, error)
}
