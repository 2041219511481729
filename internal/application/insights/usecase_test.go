package insights_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesarya/expense/internal/application/dto"
	"github.com/thesarya/expense/internal/application/insights"
	"github.com/thesarya/expense/internal/domain"
	"github.com/thesarya/expense/internal/domain/entity"
	"github.com/thesarya/expense/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test doubles
// ──────────────────────────────────────────────────────────────────────────────

type fakeExpenseRepo struct {
	data       []*entity.Expense
	lastFilter repository.ExpenseFilter
}

func (r *fakeExpenseRepo) Create(e *entity.Expense) error             { return nil }
func (r *fakeExpenseRepo) GetByID(id string) (*entity.Expense, error) { return nil, nil }
func (r *fakeExpenseRepo) Update(e *entity.Expense) error             { return nil }
func (r *fakeExpenseRepo) Delete(id string) error                     { return nil }
func (r *fakeExpenseRepo) GetLastByUser(string) (*entity.Expense, error) {
	return nil, nil
}

func (r *fakeExpenseRepo) List(f repository.ExpenseFilter) ([]*entity.Expense, error) {
	r.lastFilter = f
	var out []*entity.Expense
	for _, e := range r.data {
		if f.Centre != "" && e.Centre != f.Centre {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

type fakeInventoryRepo struct {
	data []*entity.InventoryItem
}

func (r *fakeInventoryRepo) Create(item *entity.InventoryItem) error { return nil }
func (r *fakeInventoryRepo) GetByID(id string) (*entity.InventoryItem, error) {
	return nil, nil
}
func (r *fakeInventoryRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	return nil, nil
}
func (r *fakeInventoryRepo) Update(item *entity.InventoryItem) error { return nil }
func (r *fakeInventoryRepo) Delete(id string) error                  { return nil }

func (r *fakeInventoryRepo) List(f repository.InventoryFilter) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range r.data {
		if f.Centre != "" && it.Centre != f.Centre {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func refTime() time.Time {
	return time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
}

func newTestUseCase(expenses []*entity.Expense, items []*entity.InventoryItem) (*insights.UseCase, *fakeExpenseRepo) {
	repo := &fakeExpenseRepo{data: expenses}
	uc := insights.NewUseCase(repo, &fakeInventoryRepo{data: items}).WithClock(refTime)
	return uc, repo
}

func makeExpense(id, centre string, amount int64, ts time.Time) *entity.Expense {
	return &entity.Expense{
		ID:        id,
		Amount:    decimal.NewFromInt(amount),
		Category:  "Therapy Materials",
		Item:      "Sensory Toys",
		Centre:    centre,
		Timestamp: ts,
		Date:      ts,
		CreatedBy: "ravi@aaryavart.org",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_StaffGetsOwnCentreOnly(t *testing.T) {
	expenses := []*entity.Expense{
		makeExpense("e-1", "Lucknow", 400, refTime().Add(-time.Hour)),
		makeExpense("e-2", "Delhi", 999, refTime().Add(-time.Hour)),
	}
	uc, repo := newTestUseCase(expenses, nil)

	out, err := uc.Get("Lucknow", entity.RoleStaff, dto.InsightsRequest{
		Centre: "Delhi", // ignored for staff
	})
	require.NoError(t, err)

	assert.Equal(t, "Lucknow", repo.lastFilter.Centre, "staff queries are pinned to the token centre")
	assert.Equal(t, 1, out.ExpenseCount)
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(400)))
}

func TestGet_AdminMayFilterAnyCentre(t *testing.T) {
	expenses := []*entity.Expense{
		makeExpense("e-1", "Lucknow", 400, refTime().Add(-time.Hour)),
		makeExpense("e-2", "Delhi", 999, refTime().Add(-time.Hour)),
	}
	uc, _ := newTestUseCase(expenses, nil)

	out, err := uc.Get(entity.CentreAdmin, entity.RoleAdmin, dto.InsightsRequest{Centre: "Delhi"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.ExpenseCount)
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(999)))

	out, err = uc.Get(entity.CentreAdmin, entity.RoleAdmin, dto.InsightsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, out.ExpenseCount, "an unfiltered admin rollup spans every centre")
}

func TestGet_MonthValidation(t *testing.T) {
	uc, _ := newTestUseCase(nil, nil)

	_, err := uc.Get("Lucknow", entity.RoleStaff, dto.InsightsRequest{Month: 13})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Get("Lucknow", entity.RoleStaff, dto.InsightsRequest{Month: 3})
	assert.NoError(t, err)
}

func TestGet_SurfacesScoreAndStockAlerts(t *testing.T) {
	expenses := []*entity.Expense{
		makeExpense("e-1", "Lucknow", 500, refTime().Add(-time.Hour)),
	}
	items := []*entity.InventoryItem{
		{ID: "it-1", ItemName: "Glue Sticks", Centre: "Lucknow", Quantity: 0, ItemType: entity.ItemTypeStock},
		{ID: "it-2", ItemName: "Chart Paper", Centre: "Lucknow", Quantity: 2, ItemType: entity.ItemTypeStock},
	}
	uc, _ := newTestUseCase(expenses, items)

	out, err := uc.Get("Lucknow", entity.RoleStaff, dto.InsightsRequest{})
	require.NoError(t, err)

	// Both items sit under the low threshold; the empty one is also critical
	// and out of stock.
	assert.Len(t, out.LowStock, 2)
	assert.Len(t, out.OutOfStock, 1)
	assert.Equal(t, "Glue Sticks", out.OutOfStock[0].ItemName)
	assert.Less(t, out.Score, 100, "stock problems must cost score points")
	assert.NotEmpty(t, out.Recommendations)
}

func TestGet_RecentNPassedThrough(t *testing.T) {
	var expenses []*entity.Expense
	for i := 0; i < 8; i++ {
		expenses = append(expenses,
			makeExpense(string(rune('a'+i)), "Lucknow", 10, refTime().Add(-time.Duration(i)*time.Hour)))
	}
	uc, _ := newTestUseCase(expenses, nil)

	out, err := uc.Get("Lucknow", entity.RoleStaff, dto.InsightsRequest{RecentN: 3})
	require.NoError(t, err)
	assert.Len(t, out.RecentExpenses, 3)

	out, err = uc.Get("Lucknow", entity.RoleStaff, dto.InsightsRequest{})
	require.NoError(t, err)
	assert.Len(t, out.RecentExpenses, 5, "the default window is five entries")
}
