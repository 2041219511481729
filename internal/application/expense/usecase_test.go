package expense_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesarya/expense/internal/application/dto"
	"github.com/thesarya/expense/internal/application/expense"
	"github.com/thesarya/expense/internal/domain"
	"github.com/thesarya/expense/internal/domain/entity"
	"github.com/thesarya/expense/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test doubles
// ──────────────────────────────────────────────────────────────────────────────

type fakeExpenseRepo struct {
	byID       map[string]*entity.Expense
	lastFilter repository.ExpenseFilter
}

func newFakeExpenseRepo(list ...*entity.Expense) *fakeExpenseRepo {
	r := &fakeExpenseRepo{byID: make(map[string]*entity.Expense)}
	for _, e := range list {
		cp := *e
		r.byID[e.ID] = &cp
	}
	return r
}

func (r *fakeExpenseRepo) Create(e *entity.Expense) error {
	cp := *e
	r.byID[e.ID] = &cp
	return nil
}

func (r *fakeExpenseRepo) GetByID(id string) (*entity.Expense, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeExpenseRepo) Update(e *entity.Expense) error {
	cp := *e
	r.byID[e.ID] = &cp
	return nil
}

func (r *fakeExpenseRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeExpenseRepo) List(f repository.ExpenseFilter) ([]*entity.Expense, error) {
	r.lastFilter = f
	var out []*entity.Expense
	for _, e := range r.byID {
		if f.Centre != "" && e.Centre != f.Centre {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeExpenseRepo) GetLastByUser(email string) (*entity.Expense, error) {
	var last *entity.Expense
	for _, e := range r.byID {
		if e.CreatedBy != email {
			continue
		}
		if last == nil || e.Timestamp.After(last.Timestamp) {
			last = e
		}
	}
	if last == nil {
		return nil, nil
	}
	cp := *last
	return &cp, nil
}

type fakeUserRepo struct {
	byID map[string]*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error { return nil }

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) { return nil, nil }

func (r *fakeUserRepo) List() ([]*entity.User, error) { return nil, nil }

const (
	staffID   = "user-staff"
	adminID   = "user-admin"
	staffMail = "ravi@aaryavart.org"
)

func fixedClock() time.Time {
	return time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
}

func newTestUseCase(list ...*entity.Expense) (*expense.UseCase, *fakeExpenseRepo) {
	repo := newFakeExpenseRepo(list...)
	users := &fakeUserRepo{byID: map[string]*entity.User{
		staffID: {ID: staffID, Email: staffMail, Role: entity.RoleStaff, Centre: "Lucknow"},
		adminID: {ID: adminID, Email: "admin@aaryavart.org", Role: entity.RoleAdmin, Centre: entity.CentreAdmin},
	}}
	uc := expense.NewUseCase(repo, users).WithClock(fixedClock)
	return uc, repo
}

func validCreate() dto.CreateExpenseRequest {
	return dto.CreateExpenseRequest{
		Amount:        decimal.NewFromInt(250),
		Category:      "Therapy Materials",
		Item:          "Sensory Toys",
		PaymentMethod: entity.PaymentUPI,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_StaffPinnedToTokenCentre(t *testing.T) {
	uc, _ := newTestUseCase()

	in := validCreate()
	in.Centre = "Delhi" // ignored for staff
	out, err := uc.Create(staffID, "Lucknow", entity.RoleStaff, in)
	require.NoError(t, err)

	assert.Equal(t, "Lucknow", out.Centre)
	assert.Equal(t, staffMail, out.CreatedBy, "created_by is the account email")
	assert.Equal(t, fixedClock(), out.Timestamp, "the server clock sets the timestamp")
	assert.Equal(t, fixedClock(), out.Date, "date falls back to the same instant")
}

func TestCreate_AdminMustNameACentre(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.Create(adminID, entity.CentreAdmin, entity.RoleAdmin, validCreate())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in := validCreate()
	in.Centre = "Delhi"
	out, err := uc.Create(adminID, entity.CentreAdmin, entity.RoleAdmin, in)
	require.NoError(t, err)
	assert.Equal(t, "Delhi", out.Centre)
}

func TestCreate_RejectsBadInput(t *testing.T) {
	uc, _ := newTestUseCase()

	in := validCreate()
	in.Amount = decimal.NewFromInt(-1)
	_, err := uc.Create(staffID, "Lucknow", entity.RoleStaff, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "negative amounts are rejected")

	in = validCreate()
	in.PaymentMethod = "Barter"
	_, err = uc.Create(staffID, "Lucknow", entity.RoleStaff, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "unknown payment methods are rejected")
}

// ──────────────────────────────────────────────────────────────────────────────
// List
// ──────────────────────────────────────────────────────────────────────────────

func TestList_StaffScopedToCentre_AdminUnscoped(t *testing.T) {
	uc, repo := newTestUseCase()

	_, err := uc.List("Lucknow", entity.RoleStaff, dto.ListExpensesRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Lucknow", repo.lastFilter.Centre)

	_, err = uc.List(entity.CentreAdmin, entity.RoleAdmin, dto.ListExpensesRequest{})
	require.NoError(t, err)
	assert.Empty(t, repo.lastFilter.Centre, "admin listings span every centre")
}

func TestList_PeriodResolvesAgainstClock(t *testing.T) {
	uc, repo := newTestUseCase()

	_, err := uc.List("Lucknow", entity.RoleStaff, dto.ListExpensesRequest{Period: "week"})
	require.NoError(t, err)
	assert.Equal(t, fixedClock().AddDate(0, 0, -7), repo.lastFilter.From)

	_, err = uc.List("Lucknow", entity.RoleStaff, dto.ListExpensesRequest{Period: "month"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), repo.lastFilter.From)

	_, err = uc.List("Lucknow", entity.RoleStaff, dto.ListExpensesRequest{})
	require.NoError(t, err)
	assert.True(t, repo.lastFilter.From.IsZero(), "no period means all time")
}

// ──────────────────────────────────────────────────────────────────────────────
// GetLast
// ──────────────────────────────────────────────────────────────────────────────

func TestGetLast_ReturnsNewestOwnExpense(t *testing.T) {
	older := &entity.Expense{ID: "e-1", CreatedBy: staffMail, Centre: "Lucknow",
		Amount: decimal.NewFromInt(100), Timestamp: fixedClock().Add(-2 * time.Hour)}
	newer := &entity.Expense{ID: "e-2", CreatedBy: staffMail, Centre: "Lucknow",
		Amount: decimal.NewFromInt(200), Timestamp: fixedClock().Add(-time.Hour)}
	uc, _ := newTestUseCase(older, newer)

	out, err := uc.GetLast(staffID)
	require.NoError(t, err)
	assert.Equal(t, "e-2", out.ID)
}

func TestGetLast_NoExpensesIsNotFound(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.GetLast(staffID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_RefreshesTimestampKeepsDate(t *testing.T) {
	recorded := fixedClock().Add(-48 * time.Hour)
	e := &entity.Expense{ID: "e-1", CreatedBy: staffMail, Centre: "Lucknow",
		Amount: decimal.NewFromInt(100), Timestamp: recorded, Date: recorded}
	uc, _ := newTestUseCase(e)

	note := "corrected amount"
	amount := decimal.NewFromInt(120)
	out, err := uc.Update("e-1", "Lucknow", entity.RoleStaff, dto.UpdateExpenseRequest{
		Amount: &amount,
		Note:   &note,
	})
	require.NoError(t, err)

	assert.True(t, out.Amount.Equal(amount))
	assert.Equal(t, fixedClock(), out.Timestamp, "updates refresh the timestamp")
	assert.Equal(t, recorded, out.Date, "the user-facing date is untouched")
}

func TestUpdateDelete_StaffBlockedOnOtherCentre(t *testing.T) {
	e := &entity.Expense{ID: "e-1", CreatedBy: "other@aaryavart.org", Centre: "Delhi",
		Amount: decimal.NewFromInt(100), Timestamp: fixedClock()}
	uc, _ := newTestUseCase(e)

	note := "nope"
	_, err := uc.Update("e-1", "Lucknow", entity.RoleStaff, dto.UpdateExpenseRequest{Note: &note})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = uc.Delete("e-1", "Lucknow", entity.RoleStaff)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = uc.Delete("e-1", entity.CentreAdmin, entity.RoleAdmin)
	assert.NoError(t, err, "admin may delete across centres")
}
