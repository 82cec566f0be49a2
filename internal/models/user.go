package models

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// ==============================================
// ROLE CONSTANTS
// ==============================================

const (
	RoleCustomer   = "CUSTOMER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPERADMIN"
)

// IsElevatedRole reports whether a role carries admin privileges.
// Elevated roles get short-lived refresh tokens.
func IsElevatedRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

// ==============================================
// USER MODEL (Database mapping)
// ==============================================

// User represents one account. Login is OTP-only: the password column holds
// a placeholder hash, never a user-chosen credential. The verification_token
// column is the single OTP challenge slot ("<code>:<expiry-epoch-millis>")
// and refresh_token mirrors the one live refresh token for rotation checks.
type User struct {
	ID                int         `json:"id"`
	Name              pgtype.Text `json:"name"`
	Email             string      `json:"email"` // PRIMARY login identifier
	Password          string      `json:"-"`
	Role              string      `json:"role"`
	IsVerified        bool        `json:"is_verified"`
	VerificationToken pgtype.Text `json:"-"`
	RefreshToken      pgtype.Text `json:"-"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// PublicUser is the safe version to return to clients (no secret fields)
type PublicUser struct {
	ID         int       `json:"id"`
	Name       *string   `json:"name,omitempty"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToPublic converts User to PublicUser (strips password placeholder,
// challenge slot, and stored refresh token)
func (u *User) ToPublic() *PublicUser {
	pu := &PublicUser{
		ID:         u.ID,
		Email:      u.Email,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}

	if u.Name.Valid {
		pu.Name = &u.Name.String
	}

	return pu
}

// HasRefreshToken checks if the user has a live refresh token stored
func (u *User) HasRefreshToken() bool {
	return u.RefreshToken.Valid && u.RefreshToken.String != ""
}

// ==============================================
// REQUEST IDENTITY
// ==============================================

// AuthUser is the identity attached to a request by the auth middleware
type AuthUser struct {
	ID   int    `json:"id"`
	Role string `json:"role"`
}
