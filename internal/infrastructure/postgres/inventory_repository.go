package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/thesarya/expense/internal/domain/entity"
	"github.com/thesarya/expense/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, item_name, category, centre, quantity, original_quantity, damaged, repaired, item_type, status, assigned_to, attachments, last_updated, last_used`

// InventoryRepo implements the InventoryRepository port over PostgreSQL
// (usable with pool or tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository builds the persistence adapter for inventory. Pass
// a pool or a tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create persists a new inventory item.
func (r *InventoryRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ItemName, item.Category, item.Centre, item.Quantity,
		item.OriginalQuantity, item.Damaged, item.Repaired, item.ItemType,
		item.Status, item.AssignedTo, item.Attachments, item.LastUpdated, item.LastUsed,
	)
	if err != nil {
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID fetches an item by ID; nil when missing.
func (r *InventoryRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE id = $1`
	return r.getOne(query, id)
}

// GetForUpdate locks the row until the surrounding tx finishes. Only makes
// sense on a tx-bound repository; on the pool the lock releases immediately.
func (r *InventoryRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

func (r *InventoryRepo) getOne(query, id string) (*entity.InventoryItem, error) {
	item, err := scanInventoryItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return item, nil
}

// Update rewrites every mutable field.
func (r *InventoryRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET item_name = $2, category = $3, quantity = $4, original_quantity = $5,
		    damaged = $6, repaired = $7, item_type = $8, status = $9,
		    assigned_to = $10, attachments = $11, last_updated = $12, last_used = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ItemName, item.Category, item.Quantity, item.OriginalQuantity,
		item.Damaged, item.Repaired, item.ItemType, item.Status,
		item.AssignedTo, item.Attachments, item.LastUpdated, item.LastUsed,
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	return nil
}

// Delete removes an item by ID.
func (r *InventoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	return nil
}

// List fetches items matching the filter, most recently touched first.
func (r *InventoryRepo) List(f repository.InventoryFilter) ([]*entity.InventoryItem, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1))
	}

	if f.Centre != "" {
		add("centre = ?", f.Centre)
	}
	if f.Category != "" {
		add("category = ?", f.Category)
	}
	if f.Search != "" {
		add("item_name ILIKE ?", "%"+f.Search+"%")
	}

	query := `SELECT ` + inventoryColumns + ` FROM inventory_items`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY last_updated DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
		args = append(args, f.Offset)
		query += " OFFSET $" + strconv.Itoa(len(args))
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

func scanInventoryItem(row pgx.Row) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := row.Scan(
		&item.ID, &item.ItemName, &item.Category, &item.Centre, &item.Quantity,
		&item.OriginalQuantity, &item.Damaged, &item.Repaired, &item.ItemType,
		&item.Status, &item.AssignedTo, &item.Attachments, &item.LastUpdated, &item.LastUsed,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
