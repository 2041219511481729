package repository

import "github.com/thesarya/expense/internal/domain/entity"

// UserRepository persistence port for users.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	List() ([]*entity.User, error)
}
