package models

import "time"

// UserRole defines the user role type
type UserRole string

const (
	// RoleAdmin can manage the catalog
	RoleAdmin UserRole = "ADMIN"
	// RoleLibrarian can run lending operations
	RoleLibrarian UserRole = "LIBRARIAN"
)

// User is an authentication identity. It is not part of the lending core;
// it only exists as the principal for login and password changes.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	RoleType     UserRole  `json:"roleType"`
	CreatedAt    time.Time `json:"createdAt"`
}
