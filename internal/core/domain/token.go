package domain

import "errors"

// TokenKind selects which secret/TTL pair signs a token. Access and refresh
// tokens are signed with independent secrets so a leak of one class cannot
// forge the other.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

// ErrInvalidToken covers every verification failure: bad signature, malformed
// token, expired token, wrong kind. Callers get a single outcome so the API
// leaks nothing about which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the identity payload embedded in a token.
type Claims struct {
	UserID string
	Email  string
	Role   Role
}

// TokenPair bundles a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
