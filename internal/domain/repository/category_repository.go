package repository

import "github.com/thesarya/expense/internal/domain/entity"

// CategoryRepository persistence port for the user-extensible category
// registry and its per-category item suggestions.
type CategoryRepository interface {
	Create(c *entity.Category) error
	GetByName(name string) (*entity.Category, error)
	List() ([]*entity.Category, error)
	Update(c *entity.Category) error
}
