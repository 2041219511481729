package inventory

import (
	"context"

	"github.com/thesarya/expense/internal/domain/repository"
)

// TxRunner runs fn inside a database transaction with a tx-bound inventory
// repository, so quantity actions can lock the row they mutate.
type TxRunner interface {
	Run(ctx context.Context, fn func(items repository.InventoryRepository) error) error
}
