package insights

import (
	"fmt"
	"time"

	"github.com/thesarya/expense/internal/application/dto"
	"github.com/thesarya/expense/internal/domain"
	"github.com/thesarya/expense/internal/domain/entity"
	"github.com/thesarya/expense/internal/domain/repository"
	"github.com/thesarya/expense/internal/domain/rollup"
)

// UseCase loads the expense and inventory snapshots and runs the analytics
// rollup over them. Staff always get their own centre; admins may pass any
// combination of filters.
type UseCase struct {
	expenses repository.ExpenseRepository
	items    repository.InventoryRepository
	now      func() time.Time
}

// NewUseCase builds the insights use case.
func NewUseCase(expenses repository.ExpenseRepository, items repository.InventoryRepository) *UseCase {
	return &UseCase{expenses: expenses, items: items, now: time.Now}
}

// WithClock replaces the reference clock; tests use this so month buckets
// are deterministic.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Get computes the rollup for the caller's scope.
func (uc *UseCase) Get(centre, role string, in dto.InsightsRequest) (*dto.InsightsResponse, error) {
	filter := rollup.Filter{
		Centre:   in.Centre,
		Category: in.Category,
		User:     in.User,
	}
	if role != entity.RoleAdmin {
		filter.Centre = centre
	}
	if in.Month != 0 {
		if in.Month < 1 || in.Month > 12 {
			return nil, domain.ErrInvalidInput
		}
		month := in.Month
		filter.Month = &month
	}

	// Expenses and inventory are independent queries; fetch them in parallel.
	type expResult struct {
		rows []*entity.Expense
		err  error
	}
	type invResult struct {
		rows []*entity.InventoryItem
		err  error
	}
	expCh := make(chan expResult, 1)
	invCh := make(chan invResult, 1)

	go func() {
		rows, err := uc.expenses.List(repository.ExpenseFilter{Centre: filter.Centre})
		expCh <- expResult{rows, err}
	}()
	go func() {
		rows, err := uc.items.List(repository.InventoryFilter{Centre: filter.Centre})
		invCh <- invResult{rows, err}
	}()

	expRes := <-expCh
	invRes := <-invCh

	if expRes.err != nil {
		return nil, fmt.Errorf("insights: load expenses: %w", expRes.err)
	}
	if invRes.err != nil {
		return nil, fmt.Errorf("insights: load inventory: %w", invRes.err)
	}

	expenses := make([]entity.Expense, 0, len(expRes.rows))
	for _, e := range expRes.rows {
		expenses = append(expenses, *e)
	}
	inventory := make([]entity.InventoryItem, 0, len(invRes.rows))
	for _, it := range invRes.rows {
		inventory = append(inventory, *it)
	}

	result := rollup.Compute(expenses, inventory, rollup.Options{
		ReferenceTime: uc.now(),
		Filter:        filter,
		RecentN:       in.RecentN,
	})
	return toInsightsResponse(result), nil
}

func toInsightsResponse(r rollup.Result) *dto.InsightsResponse {
	out := &dto.InsightsResponse{
		TotalAmount:      r.TotalAmount,
		ExpenseCount:     r.ExpenseCount,
		CountsByCategory: r.CountsByCategory,
		CountsByCentre:   r.CountsByCentre,
		TotalsByCategory: r.TotalsByCategory,
		TotalsByCentre:   r.TotalsByCentre,
		Centres:          r.Centres,
		Users:            r.Users,
		Categories:       r.Categories,
		TopItems:         r.TopItems,
		TopSpenders:      r.TopSpenders,
		MonthOverMonth: dto.MonthOverMonthDTO{
			CurrentTotal:     r.MonthOverMonth.CurrentTotal,
			PreviousTotal:    r.MonthOverMonth.PreviousTotal,
			CurrentCount:     r.MonthOverMonth.CurrentCount,
			PreviousCount:    r.MonthOverMonth.PreviousCount,
			PercentageChange: r.MonthOverMonth.PercentageChange,
		},
		Score:            r.Score,
		Recommendations:  r.Recommendations,
		LowStock:         toStockAlerts(r.LowStock),
		Critical:         toStockAlerts(r.Critical),
		OutOfStock:       toStockAlerts(r.OutOfStock),
		RelativeLowStock: toStockAlerts(r.RelativeLowStock),
	}
	out.RecentExpenses = make([]dto.ExpenseResponse, 0, len(r.RecentExpenses))
	for _, e := range r.RecentExpenses {
		out.RecentExpenses = append(out.RecentExpenses, dto.ExpenseResponse{
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
		})
	}
	return out
}

func toStockAlerts(items []entity.InventoryItem) []dto.StockAlertDTO {
	out := make([]dto.StockAlertDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.StockAlertDTO{
			ID:       it.ID,
			ItemName: it.ItemName,
			Category: it.Category,
			Centre:   it.Centre,
			Quantity: it.Quantity,
		})
	}
	return out
}
