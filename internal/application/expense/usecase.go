package expense

import (
	"time"

	"github.com/google/uuid"

	"github.com/thesarya/expense/internal/application/dto"
	"github.com/thesarya/expense/internal/domain"
	"github.com/thesarya/expense/internal/domain/entity"
	"github.com/thesarya/expense/internal/domain/repository"
)

// UseCase expense CRUD plus the "repeat last entry" helper.
//
// Staff operate inside their own centre (taken from the token); admins pass
// the target centre explicitly and may touch every centre's records.
type UseCase struct {
	expenses repository.ExpenseRepository
	users    repository.UserRepository
	now      func() time.Time
}

// NewUseCase builds the expense use case.
func NewUseCase(expenses repository.ExpenseRepository, users repository.UserRepository) *UseCase {
	return &UseCase{expenses: expenses, users: users, now: time.Now}
}

// WithClock replaces the clock; tests use this for deterministic periods.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Create records an expense. The server clock sets Timestamp; Date falls
// back to the same instant when the caller leaves it out.
func (uc *UseCase) Create(userID, centre, role string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if in.Amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	targetCentre, err := resolveCentre(centre, role, in.Centre)
	if err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	now := uc.now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	e := &entity.Expense{
		ID:            uuid.New().String(),
		Amount:        in.Amount,
		Category:      in.Category,
		Item:          in.Item,
		Centre:        targetCentre,
		PaymentMethod: in.PaymentMethod,
		Timestamp:     now,
		Date:          date,
		CreatedBy:     user.Email,
		Note:          in.Note,
		Attachments:   dto.ToAttachmentEntities(in.Attachments),
	}
	if err := uc.expenses.Create(e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// List returns expenses visible to the caller, optionally narrowed by
// category, free-text search and a week/month period.
func (uc *UseCase) List(centre, role string, in dto.ListExpensesRequest) (*dto.ExpenseListResponse, error) {
	page := dto.PageRequest{Limit: in.Limit, Offset: in.Offset}
	page.DefaultPage()

	f := repository.ExpenseFilter{
		Category: in.Category,
		Search:   in.Search,
		From:     uc.periodStart(in.Period),
		Limit:    page.Limit,
		Offset:   page.Offset,
	}
	if role != entity.RoleAdmin {
		f.Centre = centre
	}
	list, err := uc.expenses.List(f)
	if err != nil {
		return nil, err
	}
	out := &dto.ExpenseListResponse{
		Items: make([]dto.ExpenseResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, e := range list {
		out.Items = append(out.Items, *toExpenseResponse(e))
	}
	return out, nil
}

// GetLast returns the caller's most recent expense, for the duplicate-last
// shortcut in the entry form. Nil result maps to ErrNotFound.
func (uc *UseCase) GetLast(userID string) (*dto.ExpenseResponse, error) {
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	e, err := uc.expenses.GetLastByUser(user.Email)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return toExpenseResponse(e), nil
}

// Update applies a partial update and refreshes Timestamp. Staff can only
// touch records of their own centre.
func (uc *UseCase) Update(id, centre, role string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	e, err := uc.expenses.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if role != entity.RoleAdmin && e.Centre != centre {
		return nil, domain.ErrForbidden
	}
	if in.Amount != nil {
		if in.Amount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		e.Amount = *in.Amount
	}
	if in.Category != nil {
		e.Category = *in.Category
	}
	if in.Item != nil {
		e.Item = *in.Item
	}
	if in.PaymentMethod != nil {
		if !entity.IsValidPaymentMethod(*in.PaymentMethod) {
			return nil, domain.ErrInvalidInput
		}
		e.PaymentMethod = *in.PaymentMethod
	}
	if in.Date != nil {
		e.Date = *in.Date
	}
	if in.Note != nil {
		e.Note = *in.Note
	}
	if in.Attachments != nil {
		e.Attachments = dto.ToAttachmentEntities(in.Attachments)
	}
	e.Timestamp = uc.now()
	if err := uc.expenses.Update(e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// Delete removes an expense outright; there is no soft delete.
func (uc *UseCase) Delete(id, centre, role string) error {
	e, err := uc.expenses.GetByID(id)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}
	if role != entity.RoleAdmin && e.Centre != centre {
		return domain.ErrForbidden
	}
	return uc.expenses.Delete(id)
}

// periodStart resolves the week/month listing period against the clock.
// Unknown or empty periods mean "all time".
func (uc *UseCase) periodStart(period string) time.Time {
	now := uc.now()
	switch period {
	case "week":
		return now.AddDate(0, 0, -7)
	case "month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Time{}
	}
}

// resolveCentre picks the effective centre: staff are pinned to their token
// centre, admins must name one explicitly.
func resolveCentre(tokenCentre, role, requested string) (string, error) {
	if role != entity.RoleAdmin {
		return tokenCentre, nil
	}
	if requested == "" {
		return "", domain.ErrInvalidInput
	}
	return requested, nil
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:            e.ID,
		Amount:        e.Amount,
		Category:      e.Category,
		Item:          e.Item,
		Centre:        e.Centre,
		PaymentMethod: e.PaymentMethod,
		Timestamp:     e.Timestamp,
		Date:          e.Date,
		CreatedBy:     e.CreatedBy,
		Note:          e.Note,
		Attachments:   dto.ToAttachmentDTOs(e.Attachments),
	}
}
