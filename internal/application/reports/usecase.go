package reports

import (
	"fmt"
	"sort"
	"time"

	"github.com/thesarya/expense/internal/application/dto"
	"github.com/thesarya/expense/internal/domain"
	"github.com/thesarya/expense/internal/domain/entity"
	"github.com/thesarya/expense/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// UseCase assembles the balance-sheet report from filtered expenses and
// exports it as JSON, PDF or XLSX.
type UseCase struct {
	expenses repository.ExpenseRepository
	pdf      BalanceSheetPDFGenerator
	xlsx     BalanceSheetExcelWriter
}

// NewUseCase builds the reports use case.
func NewUseCase(expenses repository.ExpenseRepository, pdf BalanceSheetPDFGenerator, xlsx BalanceSheetExcelWriter) *UseCase {
	return &UseCase{expenses: expenses, pdf: pdf, xlsx: xlsx}
}

// BalanceSheet builds the report for the caller's scope. The end date is
// inclusive: it is extended to the last instant of that day.
func (uc *UseCase) BalanceSheet(centre, role string, in dto.BalanceSheetRequest) (*dto.BalanceSheetResponse, error) {
	f := repository.ExpenseFilter{
		Category: in.Category,
		Items:    in.Items,
	}
	if role != entity.RoleAdmin {
		f.Centre = centre
	} else {
		f.Centre = in.Centre
	}

	var err error
	if in.StartDate != "" {
		f.From, err = time.Parse(dateLayout, in.StartDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.EndDate != "" {
		end, err := time.Parse(dateLayout, in.EndDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		f.To = end.AddDate(0, 0, 1)
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return nil, domain.ErrInvalidInput
	}

	list, err := uc.expenses.List(f)
	if err != nil {
		return nil, fmt.Errorf("reports: load expenses: %w", err)
	}

	report := &dto.BalanceSheetResponse{
		Expenses: make([]dto.ExpenseResponse, 0, len(list)),
	}
	centreTotals := map[string]*dto.CentreBreakdownDTO{}
	categoryTotals := map[string]*dto.CategoryBreakdownDTO{}

	for _, e := range list {
		resp := dto.ExpenseResponse{
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
		}
		report.Expenses = append(report.Expenses, resp)
		report.Summary.TotalAmount = report.Summary.TotalAmount.Add(e.Amount)
		report.Summary.TotalItems++

		cb := centreTotals[e.Centre]
		if cb == nil {
			cb = &dto.CentreBreakdownDTO{Centre: e.Centre}
			centreTotals[e.Centre] = cb
		}
		cb.Total = cb.Total.Add(e.Amount)
		cb.Items = append(cb.Items, resp)

		cat := categoryTotals[e.Category]
		if cat == nil {
			cat = &dto.CategoryBreakdownDTO{Category: e.Category}
			categoryTotals[e.Category] = cat
		}
		cat.Total = cat.Total.Add(e.Amount)
		cat.Count++
	}

	report.Summary.DateRange = dateRangeLabel(in.StartDate, in.EndDate)
	report.CentreBreakdown = sortedCentres(centreTotals)
	report.CategoryBreakdown = sortedCategories(categoryTotals)
	return report, nil
}

// BalanceSheetPDF renders the report through the PDF generator.
func (uc *UseCase) BalanceSheetPDF(centre, role string, in dto.BalanceSheetRequest) ([]byte, error) {
	report, err := uc.BalanceSheet(centre, role, in)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateBalanceSheetPDF(report)
}

// BalanceSheetXLSX renders the report through the Excel writer.
func (uc *UseCase) BalanceSheetXLSX(centre, role string, in dto.BalanceSheetRequest) ([]byte, error) {
	report, err := uc.BalanceSheet(centre, role, in)
	if err != nil {
		return nil, err
	}
	return uc.xlsx.WriteBalanceSheetXLSX(report)
}

func dateRangeLabel(start, end string) string {
	switch {
	case start == "" && end == "":
		return "All time"
	case start == "":
		return "Until " + end
	case end == "":
		return "From " + start
	default:
		return start + " to " + end
	}
}

// Breakdowns render largest-first; ties fall back to the name so output is
// stable across runs.
func sortedCentres(m map[string]*dto.CentreBreakdownDTO) []dto.CentreBreakdownDTO {
	out := make([]dto.CentreBreakdownDTO, 0, len(m))
	for _, cb := range m {
		out = append(out, *cb)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Centre < out[j].Centre
	})
	return out
}

func sortedCategories(m map[string]*dto.CategoryBreakdownDTO) []dto.CategoryBreakdownDTO {
	out := make([]dto.CategoryBreakdownDTO, 0, len(m))
	for _, cat := range m {
		out = append(out, *cat)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Category < out[j].Category
	})
	return out
}
