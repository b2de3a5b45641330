package models

import "time"

// UserRole represents the roles known to the authorization gate.
type UserRole string

const (
	// RoleNone is the default for every registered account.
	RoleNone       UserRole = "none"
	RoleAdmin      UserRole = "admin"
	RoleInstructor UserRole = "instructor"
)

// ParseUserRole maps a stored value onto a role. Anything unrecognised,
// including an empty value, is RoleNone.
func ParseUserRole(raw string) UserRole {
	switch UserRole(raw) {
	case RoleAdmin:
		return RoleAdmin
	case RoleInstructor:
		return RoleInstructor
	default:
		return RoleNone
	}
}

// Promotable reports whether r is a role an admin may grant.
func (r UserRole) Promotable() bool {
	return r == RoleAdmin || r == RoleInstructor
}

// User represents an application account stored in the users table.
type User struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	PhotoURL  string    `db:"photo_url" json:"photoURL"`
	Role      UserRole  `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// RegisterUserRequest is the payload accepted by user registration.
type RegisterUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"max=200"`
	PhotoURL string `json:"photoURL" validate:"omitempty,url"`
}

// RegisterResult tells a fresh registration apart from an existing account.
type RegisterResult struct {
	User    *User  `json:"user,omitempty"`
	Created bool   `json:"created"`
	Message string `json:"message,omitempty"`
}

// DeleteResult reports how many records a delete removed.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}
