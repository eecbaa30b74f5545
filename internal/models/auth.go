package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse returns the issued access token and user info.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	User        UserInfo  `json:"user"`
	IssuedAt    time.Time `json:"issued_at"`
}

// UserInfo describes the authenticated user in responses.
type UserInfo struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Role     UserRole `json:"role"`
	BranchID string   `json:"branch_id,omitempty"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	BranchID string   `json:"branch_id,omitempty"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	jwt.RegisteredClaims
}

// Actor is the authenticated caller as seen by services.
type Actor struct {
	ID       string
	Name     string
	Role     UserRole
	BranchID string
	IP       string
	Agent    string
}

// ActorFromClaims builds an Actor from validated token claims.
func ActorFromClaims(c *JWTClaims) Actor {
	if c == nil {
		return Actor{}
	}
	return Actor{ID: c.UserID, Name: c.FullName, Role: c.Role, BranchID: c.BranchID}
}

// IsSuperAdmin reports whether the actor spans every branch.
func (a Actor) IsSuperAdmin() bool { return a.Role == RoleSuperAdmin }

// CanAccessBranch reports whether the actor may act inside branchID.
func (a Actor) CanAccessBranch(branchID string) bool {
	return a.IsSuperAdmin() || (a.BranchID != "" && a.BranchID == branchID)
}
