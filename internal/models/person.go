package models

import "time"

// Person is a portal account. SystemRole references a Role by title;
// the role carries all access scopes.
type Person struct {
	PersonID     string     `json:"personId" db:"person_id"`
	FirstName    string     `json:"firstName" db:"first_name"`
	LastName     string     `json:"lastName" db:"last_name"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	SystemRole   string     `json:"systemRole" db:"system_role"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	LastLoginAt  *time.Time `json:"lastLoginAt" db:"last_login_at"`
}

// SessionUser is the slice of a Person exposed to the front end via
// /api/auth/me and embedded in the session token claims.
type SessionUser struct {
	PersonID   string `json:"personId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	SystemRole string `json:"systemRole"`
}

// LoginRequest is the body of /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
