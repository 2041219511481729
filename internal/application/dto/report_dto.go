package dto

import "github.com/shopspring/decimal"

// BalanceSheetRequest filters for the balance-sheet report. Dates use
// YYYY-MM-DD; EndDate is inclusive (extended to end of day).
type BalanceSheetRequest struct {
	StartDate string   `query:"start_date"`
	EndDate   string   `query:"end_date"`
	Centre    string   `query:"centre"`
	Category  string   `query:"category"`
	Items     []string `query:"items"`
}

// ReportSummaryDTO top-line numbers of the balance sheet.
type ReportSummaryDTO struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalItems  int             `json:"total_items"`
	DateRange   string          `json:"date_range"`
}

// CentreBreakdownDTO per-centre totals with the contributing expenses.
type CentreBreakdownDTO struct {
	Centre string            `json:"centre"`
	Total  decimal.Decimal   `json:"total"`
	Items  []ExpenseResponse `json:"items"`
}

// CategoryBreakdownDTO per-category totals.
type CategoryBreakdownDTO struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// BalanceSheetResponse the assembled report.
type BalanceSheetResponse struct {
	Summary           ReportSummaryDTO       `json:"summary"`
	CentreBreakdown   []CentreBreakdownDTO   `json:"centre_breakdown"`
	CategoryBreakdown []CategoryBreakdownDTO `json:"category_breakdown"`
	Expenses          []ExpenseResponse      `json:"expenses"`
}
