package entity

import "time"

// Category is a user-extensible expense category with its suggested item list.
// New categories and items may be created at runtime; nothing here is a
// closed enum.
type Category struct {
	ID        string
	Name      string
	Items     []string // stored as JSONB
	CreatedAt time.Time
	UpdatedAt time.Time
}
