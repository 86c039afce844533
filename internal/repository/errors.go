package repository

import "errors"

var (
	// Common errors
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	// Role errors
	ErrRoleNotFound  = errors.New("role not found")
	ErrRoleExists    = errors.New("role already exists")
	ErrRoleInUse     = errors.New("role is in use")
	ErrProtectedRole = errors.New("cannot modify protected role")

	// Person errors
	ErrPersonNotFound = errors.New("person not found")
	ErrEmailExists    = errors.New("email already exists")
)
