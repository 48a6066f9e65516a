package auth

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Role is what a caller is allowed to do in a workspace.
type Role string

const (
	// RoleClient uploads and manages its own documents.
	RoleClient Role = "client"
	// RoleReviewer reviews, comments, and locks documents.
	RoleReviewer Role = "reviewer"
	// RoleAdmin can do everything a reviewer can, plus purge archived folders.
	RoleAdmin Role = "admin"
)

// ParseRole maps a claim value to a Role. Unknown values are clients.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleReviewer:
		return RoleReviewer
	case RoleAdmin:
		return RoleAdmin
	}
	return RoleClient
}

// Actor is the authenticated caller.
type Actor struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role"`
}

// Name is what lands in audit and version records.
func (a *Actor) Name() string {
	if a.Email != "" {
		return a.Email
	}
	return a.ID
}

// CanReview reports whether the actor may review, comment, lock, or unlock.
func (a *Actor) CanReview() bool {
	return a.Role == RoleReviewer || a.Role == RoleAdmin
}

// IsAdmin reports whether the actor has the admin role.
func (a *Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Claims is the token payload. The role lives under app_role so it does
// not collide with identity providers that use "role" for their own purposes.
type Claims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	AppRole string `json:"app_role"`
}

// Actor builds the caller from verified claims.
func (c *Claims) Actor() *Actor {
	return &Actor{
		ID:    c.Subject,
		Email: c.Email,
		Role:  ParseRole(c.AppRole),
	}
}
