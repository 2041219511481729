package repository

import "github.com/thesarya/expense/internal/domain/entity"

// InventoryFilter narrows inventory listings. Zero values mean "no constraint".
type InventoryFilter struct {
	Centre   string
	Category string
	Search   string // substring match on item name
	Limit    int
	Offset   int
}

// InventoryRepository persistence port for inventory items.
type InventoryRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	// GetForUpdate locks the row for the duration of the surrounding
	// transaction; only meaningful on a tx-bound repository.
	GetForUpdate(id string) (*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	Delete(id string) error
	List(f InventoryFilter) ([]*entity.InventoryItem, error)
}
