package auth

import (
	"errors"
	"time"
)

// Role is a label on a user used for coarse-grained authorisation
// decisions. The set is open: routes declare which roles they allow,
// and any string is a valid role on a user record.
type Role string

const (
	// RoleMember is the default role assigned at registration.
	RoleMember Role = "member"

	// RoleModerator may access moderation routes.
	RoleModerator Role = "moderator"

	// RoleAdmin may access all gated routes, including the audit trail.
	RoleAdmin Role = "admin"
)

// User represents a registered account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialised
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Sentinel errors for auth operations.
var (
	ErrEmailExists  = errors.New("email already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")
)
