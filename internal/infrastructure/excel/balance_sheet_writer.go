// Package excel renders the balance-sheet report as an XLSX workbook with a
// Summary sheet and a Detailed Expenses sheet.
package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/thesarya/expense/internal/application/dto"
	"github.com/thesarya/expense/internal/application/reports"
)

var _ reports.BalanceSheetExcelWriter = (*BalanceSheetWriter)(nil)

const (
	summarySheet = "Summary"
	detailSheet  = "Detailed Expenses"
)

// BalanceSheetWriter implements reports.BalanceSheetExcelWriter with excelize.
type BalanceSheetWriter struct{}

// NewBalanceSheetWriter builds the writer.
func NewBalanceSheetWriter() *BalanceSheetWriter { return &BalanceSheetWriter{} }

// WriteBalanceSheetXLSX renders the report and returns the workbook bytes.
func (w *BalanceSheetWriter) WriteBalanceSheetXLSX(report *dto.BalanceSheetResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
	}
	if _, err := f.NewSheet(detailSheet); err != nil {
		return nil, fmt.Errorf("xlsx: create detail sheet: %w", err)
	}

	if err := writeSummary(f, report); err != nil {
		return nil, err
	}
	if err := writeDetail(f, report); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, report *dto.BalanceSheetResponse) error {
	set := func(cell string, value interface{}) error {
		return f.SetCellValue(summarySheet, cell, value)
	}

	cells := []struct {
		cell  string
		value interface{}
	}{
		{"A1", "Aaryavart Centre - Balance Sheet"},
		{"A2", "Date range"},
		{"B2", report.Summary.DateRange},
		{"A3", "Total amount"},
		{"B3", report.Summary.TotalAmount.InexactFloat64()},
		{"A4", "Total records"},
		{"B4", report.Summary.TotalItems},
		{"A6", "Category"},
		{"B6", "Count"},
		{"C6", "Total"},
	}
	for _, c := range cells {
		if err := set(c.cell, c.value); err != nil {
			return fmt.Errorf("xlsx: summary cell %s: %w", c.cell, err)
		}
	}

	rowNo := 7
	for _, cat := range report.CategoryBreakdown {
		if err := set(fmt.Sprintf("A%d", rowNo), cat.Category); err != nil {
			return err
		}
		if err := set(fmt.Sprintf("B%d", rowNo), cat.Count); err != nil {
			return err
		}
		if err := set(fmt.Sprintf("C%d", rowNo), cat.Total.InexactFloat64()); err != nil {
			return err
		}
		rowNo++
	}

	rowNo++
	if err := set(fmt.Sprintf("A%d", rowNo), "Centre"); err != nil {
		return err
	}
	if err := set(fmt.Sprintf("B%d", rowNo), "Total"); err != nil {
		return err
	}
	rowNo++
	for _, cb := range report.CentreBreakdown {
		if err := set(fmt.Sprintf("A%d", rowNo), cb.Centre); err != nil {
			return err
		}
		if err := set(fmt.Sprintf("B%d", rowNo), cb.Total.InexactFloat64()); err != nil {
			return err
		}
		rowNo++
	}
	return nil
}

func writeDetail(f *excelize.File, report *dto.BalanceSheetResponse) error {
	headers := []string{"Date", "Item", "Category", "Centre", "Payment Method", "Created By", "Note", "Amount"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("xlsx: header cell: %w", err)
		}
		if err := f.SetCellValue(detailSheet, cell, h); err != nil {
			return fmt.Errorf("xlsx: detail header: %w", err)
		}
	}

	for rowIdx, e := range report.Expenses {
		values := []interface{}{
			e.Date.Format("2006-01-02"),
			e.Item,
			e.Category,
			e.Centre,
			e.PaymentMethod,
			e.CreatedBy,
			e.Note,
			e.Amount.InexactFloat64(),
		}
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("xlsx: detail cell: %w", err)
			}
			if err := f.SetCellValue(detailSheet, cell, v); err != nil {
				return fmt.Errorf("xlsx: detail row %d: %w", rowIdx+2, err)
			}
		}
	}
	return nil
}
