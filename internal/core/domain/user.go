package domain

import (
	"errors"
	"time"
)

// Role is the closed set of authorization roles. Adding a role means adding a
// constant here and extending every switch over the set, checked at compile
// time rather than at runtime.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleAnalyst Role = "analyst"
	RoleViewer  Role = "viewer"
)

// DefaultRole is assigned when registration omits the role.
const DefaultRole = RoleViewer

// ParseRole maps a raw string onto the closed role set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleAnalyst, RoleViewer:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

var ErrInvalidRole = errors.New("invalid role")
var ErrInvalidInput = errors.New("invalid input")
var ErrUserExists = errors.New("user with this email already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("insufficient permissions")

// User models an identity record. The password hash never crosses the API
// boundary.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the request-scoped authenticated principal. It is built from a
// freshly loaded user record, not from token claims, so a role change takes
// effect on the next authenticated call.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}
