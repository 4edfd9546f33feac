package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hydrostat/auth-service/internal/core/domain"
)

// KindConfig is the secret/TTL pair for one token kind.
type KindConfig struct {
	Secret string
	TTL    time.Duration
}

// JWTCodec signs and verifies HS256 tokens with independent secrets and TTLs
// per kind. Compromise of the access secret does not allow forging refresh
// tokens, and vice versa.
type JWTCodec struct {
	kinds map[domain.TokenKind]KindConfig
}

func NewJWTCodec(access, refresh KindConfig) *JWTCodec {
	return &JWTCodec{
		kinds: map[domain.TokenKind]KindConfig{
			domain.TokenAccess:  access,
			domain.TokenRefresh: refresh,
		},
	}
}

type tokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Issue serializes the claims with an expiry of now + TTL(kind) and signs
// them with the kind's secret.
func (c *JWTCodec) Issue(claims domain.Claims, kind domain.TokenKind) (string, error) {
	kc, ok := c.kinds[kind]
	if !ok {
		return "", fmt.Errorf("unknown token kind %q", kind)
	}

	now := time.Now().UTC()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   string(claims.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(kc.TTL)),
		},
	})

	signed, err := t.SignedString([]byte(kc.Secret))
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, nil
}

// Verify checks signature and expiry against the kind's secret. Every failure
// mode — bad signature, malformed token, expired, signed as the other kind —
// collapses into domain.ErrInvalidToken so callers cannot tell them apart.
func (c *JWTCodec) Verify(token string, kind domain.TokenKind) (*domain.Claims, error) {
	kc, ok := c.kinds[kind]
	if !ok {
		return nil, domain.ErrInvalidToken
	}

	var tc tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(kc.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	role, err := domain.ParseRole(tc.Role)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	return &domain.Claims{
		UserID: tc.UserID,
		Email:  tc.Email,
		Role:   role,
	}, nil
}
