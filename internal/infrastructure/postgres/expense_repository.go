package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/thesarya/expense/internal/domain"
	"github.com/thesarya/expense/internal/domain/entity"
	"github.com/thesarya/expense/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

const expenseColumns = `id, amount, category, item, centre, payment_method, recorded_at, expense_date, created_by, note, attachments`

// ExpenseRepo implements the ExpenseRepository port over PostgreSQL
// (usable with pool or tx).
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository builds the persistence adapter for expenses. Pass a
// pool or a tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create persists a new expense.
func (r *ExpenseRepo) Create(e *entity.Expense) error {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.Amount, e.Category, e.Item, e.Centre, e.PaymentMethod,
		e.Timestamp, e.Date, e.CreatedBy, e.Note, e.Attachments,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetByID fetches an expense by ID; nil when missing.
func (r *ExpenseRepo) GetByID(id string) (*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	e, err := scanExpense(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

// Update rewrites every mutable field; the use case owns partial-update
// semantics.
func (r *ExpenseRepo) Update(e *entity.Expense) error {
	query := `
		UPDATE expenses
		SET amount = $2, category = $3, item = $4, payment_method = $5,
		    recorded_at = $6, expense_date = $7, note = $8, attachments = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.Amount, e.Category, e.Item, e.PaymentMethod,
		e.Timestamp, e.Date, e.Note, e.Attachments,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return nil
}

// Delete removes an expense by ID.
func (r *ExpenseRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// List fetches expenses matching the filter, newest first.
func (r *ExpenseRepo) List(f repository.ExpenseFilter) ([]*entity.Expense, error) {
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
	if f.CreatedBy != "" {
		add("created_by = ?", f.CreatedBy)
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		p := "$" + strconv.Itoa(len(args))
		conds = append(conds, "(item ILIKE "+p+" OR category ILIKE "+p+" OR note ILIKE "+p+")")
	}
	if len(f.Items) > 0 {
		add("item = ANY(?)", f.Items)
	}
	if !f.From.IsZero() {
		add("recorded_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		add("recorded_at < ?", f.To)
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY recorded_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
		args = append(args, f.Offset)
		query += " OFFSET $" + strconv.Itoa(len(args))
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var list []*entity.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// GetLastByUser returns the newest expense recorded by the user, or nil.
func (r *ExpenseRepo) GetLastByUser(email string) (*entity.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses WHERE created_by = $1
		ORDER BY recorded_at DESC LIMIT 1`
	e, err := scanExpense(r.q.QueryRow(context.Background(), query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get last expense: %w", err)
	}
	return e, nil
}

func scanExpense(row pgx.Row) (*entity.Expense, error) {
	var e entity.Expense
	err := row.Scan(
		&e.ID, &e.Amount, &e.Category, &e.Item, &e.Centre, &e.PaymentMethod,
		&e.Timestamp, &e.Date, &e.CreatedBy, &e.Note, &e.Attachments,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
