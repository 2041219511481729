package reports

import "github.com/thesarya/expense/internal/application/dto"

// BalanceSheetPDFGenerator renders the balance sheet as a PDF document.
type BalanceSheetPDFGenerator interface {
	GenerateBalanceSheetPDF(report *dto.BalanceSheetResponse) ([]byte, error)
}

// BalanceSheetExcelWriter renders the balance sheet as an XLSX workbook.
type BalanceSheetExcelWriter interface {
	WriteBalanceSheetXLSX(report *dto.BalanceSheetResponse) ([]byte, error)
}
