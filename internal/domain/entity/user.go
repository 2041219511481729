package entity

import "time"

// Valid roles for User.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// CentreAdmin is the pseudo-centre assigned to admin users; it grants
// visibility over every real centre.
const CentreAdmin = "Admin"

// User represents a system user tied to a centre.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext in the domain after persisting
	Name         string
	Role         string // admin, staff
	Centre       string // "Admin" for admins, otherwise the staff member's centre
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
