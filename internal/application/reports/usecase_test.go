package reports_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesarya/expense/internal/application/dto"
	"github.com/thesarya/expense/internal/application/reports"
	"github.com/thesarya/expense/internal/domain"
	"github.com/thesarya/expense/internal/domain/entity"
	"github.com/thesarya/expense/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test doubles
// ──────────────────────────────────────────────────────────────────────────────

// fakeExpenseRepo serves a fixed dataset, applying the centre and date window
// the way the SQL adapter does.
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
		if !f.From.IsZero() && e.Timestamp.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !e.Timestamp.Before(f.To) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

type stubPDF struct{ called bool }

func (s *stubPDF) GenerateBalanceSheetPDF(*dto.BalanceSheetResponse) ([]byte, error) {
	s.called = true
	return []byte("%PDF-1.4"), nil
}

type stubXLSX struct{ called bool }

func (s *stubXLSX) WriteBalanceSheetXLSX(*dto.BalanceSheetResponse) ([]byte, error) {
	s.called = true
	return []byte("PK"), nil
}

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 12, 0, 0, 0, time.UTC)
}

func makeExpense(id, centre, category string, amount int64, ts time.Time) *entity.Expense {
	return &entity.Expense{
		ID:        id,
		Amount:    decimal.NewFromInt(amount),
		Category:  category,
		Item:      "Item " + id,
		Centre:    centre,
		Timestamp: ts,
		Date:      ts,
	}
}

func testData() []*entity.Expense {
	return []*entity.Expense{
		makeExpense("e-1", "Lucknow", "Therapy Materials", 500, day(1)),
		makeExpense("e-2", "Lucknow", "Utilities", 300, day(5)),
		makeExpense("e-3", "Delhi", "Therapy Materials", 200, day(10)),
		makeExpense("e-4", "Delhi", "Utilities", 900, day(20)),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Balance sheet
// ──────────────────────────────────────────────────────────────────────────────

func TestBalanceSheet_SummaryAndBreakdowns(t *testing.T) {
	repo := &fakeExpenseRepo{data: testData()}
	uc := reports.NewUseCase(repo, &stubPDF{}, &stubXLSX{})

	out, err := uc.BalanceSheet(entity.CentreAdmin, entity.RoleAdmin, dto.BalanceSheetRequest{})
	require.NoError(t, err)

	assert.Equal(t, 4, out.Summary.TotalItems)
	assert.True(t, out.Summary.TotalAmount.Equal(decimal.NewFromInt(1900)),
		"total must be the sum of every row, got %s", out.Summary.TotalAmount)
	assert.Equal(t, "All time", out.Summary.DateRange)

	// Breakdowns are largest-first.
	require.Len(t, out.CentreBreakdown, 2)
	assert.Equal(t, "Delhi", out.CentreBreakdown[0].Centre)
	assert.True(t, out.CentreBreakdown[0].Total.Equal(decimal.NewFromInt(1100)))
	assert.Len(t, out.CentreBreakdown[0].Items, 2)

	require.Len(t, out.CategoryBreakdown, 2)
	assert.Equal(t, "Utilities", out.CategoryBreakdown[0].Category)
	assert.True(t, out.CategoryBreakdown[0].Total.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, 2, out.CategoryBreakdown[0].Count)
}

func TestBalanceSheet_EndDateIsInclusive(t *testing.T) {
	repo := &fakeExpenseRepo{data: testData()}
	uc := reports.NewUseCase(repo, &stubPDF{}, &stubXLSX{})

	out, err := uc.BalanceSheet(entity.CentreAdmin, entity.RoleAdmin, dto.BalanceSheetRequest{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-10",
	})
	require.NoError(t, err)

	// e-3 lands at noon on the end date and must be included; e-4 is outside.
	assert.Equal(t, 3, out.Summary.TotalItems)
	assert.Equal(t, "2026-03-01 to 2026-03-10", out.Summary.DateRange)
}

func TestBalanceSheet_RejectsBadDates(t *testing.T) {
	repo := &fakeExpenseRepo{data: testData()}
	uc := reports.NewUseCase(repo, &stubPDF{}, &stubXLSX{})

	_, err := uc.BalanceSheet(entity.CentreAdmin, entity.RoleAdmin, dto.BalanceSheetRequest{
		StartDate: "01/03/2026",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "non ISO dates are rejected")

	_, err = uc.BalanceSheet(entity.CentreAdmin, entity.RoleAdmin, dto.BalanceSheetRequest{
		StartDate: "2026-03-10",
		EndDate:   "2026-03-01",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "inverted ranges are rejected")
}

func TestBalanceSheet_StaffScopedToOwnCentre(t *testing.T) {
	repo := &fakeExpenseRepo{data: testData()}
	uc := reports.NewUseCase(repo, &stubPDF{}, &stubXLSX{})

	out, err := uc.BalanceSheet("Lucknow", entity.RoleStaff, dto.BalanceSheetRequest{
		Centre: "Delhi", // ignored for staff
	})
	require.NoError(t, err)

	assert.Equal(t, "Lucknow", repo.lastFilter.Centre)
	assert.Equal(t, 2, out.Summary.TotalItems)
	assert.True(t, out.Summary.TotalAmount.Equal(decimal.NewFromInt(800)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Export delegation
// ──────────────────────────────────────────────────────────────────────────────

func TestExports_DelegateToGenerators(t *testing.T) {
	repo := &fakeExpenseRepo{data: testData()}
	pdfGen := &stubPDF{}
	xlsxGen := &stubXLSX{}
	uc := reports.NewUseCase(repo, pdfGen, xlsxGen)

	pdf, err := uc.BalanceSheetPDF(entity.CentreAdmin, entity.RoleAdmin, dto.BalanceSheetRequest{})
	require.NoError(t, err)
	assert.True(t, pdfGen.called)
	assert.NotEmpty(t, pdf)

	book, err := uc.BalanceSheetXLSX(entity.CentreAdmin, entity.RoleAdmin, dto.BalanceSheetRequest{})
	require.NoError(t, err)
	assert.True(t, xlsxGen.called)
	assert.NotEmpty(t, book)
}
