package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User is owned by the authentication subsystem; this core reads it to
// resolve the caller's identity and role, and never mutates it.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanAccess is the single authorization predicate gating resource access:
// owners and admins pass, everyone else is forbidden.
func (u *User) CanAccess(ownerID uuid.UUID) bool {
	return u.ID == ownerID || u.IsAdmin()
}
