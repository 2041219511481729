package repository

import (
	"time"

	"github.com/thesarya/expense/internal/domain/entity"
)

// ExpenseFilter narrows List queries. Zero values mean "no constraint".
// Search matches item, category or note as a case-insensitive substring.
type ExpenseFilter struct {
	Centre    string
	Category  string
	CreatedBy string
	Search    string
	Items     []string
	From      time.Time
	To        time.Time // exclusive
	Limit     int
	Offset    int
}

// ExpenseRepository persistence port for expenses.
type ExpenseRepository interface {
	Create(e *entity.Expense) error
	GetByID(id string) (*entity.Expense, error)
	Update(e *entity.Expense) error
	Delete(id string) error
	List(f ExpenseFilter) ([]*entity.Expense, error)
	// GetLastByUser returns the newest expense the user recorded, or nil.
	GetLastByUser(email string) (*entity.Expense, error)
}
