package dto

import (
	"github.com/shopspring/decimal"

	"github.com/thesarya/expense/internal/domain/rollup"
)

// InsightsRequest query filters for the analytics rollup. Month is 1-12
// within the current year; zero means no month restriction.
type InsightsRequest struct {
	Centre   string `query:"centre"`
	Category string `query:"category"`
	User     string `query:"user"`
	Month    int    `query:"month"`
	RecentN  int    `query:"recent_n"`
}

// StockAlertDTO one inventory item that tripped a stock alert.
type StockAlertDTO struct {
	ID       string `json:"id"`
	ItemName string `json:"item_name"`
	Category string `json:"category"`
	Centre   string `json:"centre"`
	Quantity int    `json:"quantity"`
}

// MonthOverMonthDTO month comparison output.
type MonthOverMonthDTO struct {
	CurrentTotal     decimal.Decimal `json:"current_total"`
	PreviousTotal    decimal.Decimal `json:"previous_total"`
	CurrentCount     int             `json:"current_count"`
	PreviousCount    int             `json:"previous_count"`
	PercentageChange decimal.Decimal `json:"percentage_change"`
}

// InsightsResponse the full rollup for a centre (or globally, for admins).
type InsightsResponse struct {
	TotalAmount  decimal.Decimal `json:"total_amount"`
	ExpenseCount int             `json:"expense_count"`

	CountsByCategory map[string]int             `json:"counts_by_category"`
	CountsByCentre   map[string]int             `json:"counts_by_centre"`
	TotalsByCategory map[string]decimal.Decimal `json:"totals_by_category"`
	TotalsByCentre   map[string]decimal.Decimal `json:"totals_by_centre"`

	Centres    []string `json:"centres"`
	Users      []string `json:"users"`
	Categories []string `json:"categories"`

	TopItems       []rollup.ItemCount      `json:"top_items"`
	TopSpenders    []rollup.SpenderTotal   `json:"top_spenders"`
	RecentExpenses []ExpenseResponse       `json:"recent_expenses"`
	MonthOverMonth MonthOverMonthDTO       `json:"month_over_month"`
	Score          int                     `json:"performance_score"`
	Recommendations []rollup.Recommendation `json:"recommendations"`

	LowStock         []StockAlertDTO `json:"low_stock_items"`
	Critical         []StockAlertDTO `json:"critical_items"`
	OutOfStock       []StockAlertDTO `json:"out_of_stock_items"`
	RelativeLowStock []StockAlertDTO `json:"relative_low_stock_items"`
}
