// Package pdf renders the balance-sheet report as an A4 document.
//
// Page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Aaryavart Centre - Balance Sheet │ date range       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SUMMARY: total amount / record count                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Category | Count | Total                             │
//	│  TABLE: Centre | Total                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETAIL: Date | Item | Category | Centre | By | Amount       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/thesarya/expense/internal/application/dto"
	"github.com/thesarya/expense/internal/application/reports"
)

var _ reports.BalanceSheetPDFGenerator = (*BalanceSheetGenerator)(nil)

// ── Colour palette ────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 13, Green: 71, Blue: 161}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Indian digit grouping for rupee amounts (1,23,456.78).
var inPrinter = message.NewPrinter(language.MustParse("en-IN"))

// ── Generator ─────────────────────────────────────────────────────────────────

// BalanceSheetGenerator implements reports.BalanceSheetPDFGenerator with
// Maroto v2.
type BalanceSheetGenerator struct{}

// NewBalanceSheetGenerator builds the generator.
func NewBalanceSheetGenerator() *BalanceSheetGenerator { return &BalanceSheetGenerator{} }

// GenerateBalanceSheetPDF renders the report and returns its bytes.
func (g *BalanceSheetGenerator) GenerateBalanceSheetPDF(report *dto.BalanceSheetResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Aaryavart Centre - Balance Sheet", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitleRow("Spend by category"))
	m.AddRows(categoryHeaderRow())
	for _, cat := range report.CategoryBreakdown {
		m.AddRows(categoryRow(cat))
	}

	m.AddRows(line.NewRow(2))
	m.AddRows(sectionTitleRow("Spend by centre"))
	for _, cb := range report.CentreBreakdown {
		m.AddRows(centreRow(cb))
	}

	m.AddRows(line.NewRow(2))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(sectionTitleRow("Expense detail"))
	m.AddRows(detailHeaderRow())
	for _, e := range report.Expenses {
		m.AddRows(detailRow(e))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

func headerRow(report *dto.BalanceSheetResponse) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Aaryavart Centre - Balance Sheet", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New(report.Summary.DateRange, props.Text{
				Size: 9, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func summaryRow(report *dto.BalanceSheetResponse) core.Row {
	return row.New(10).Add(
		col.New(6).Add(
			text.New("Total: "+formatMoney(report.Summary.TotalAmount), props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 2,
			}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("%d expense records", report.Summary.TotalItems), props.Text{
				Size: 9, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 1}),
		),
	)
}

func categoryHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell(6, "Category"),
		headerCell(2, "Count"),
		headerCell(4, "Total"),
	)
}

func categoryRow(cat dto.CategoryBreakdownDTO) core.Row {
	return row.New(5).Add(
		bodyCell(6, cat.Category, align.Left),
		bodyCell(2, fmt.Sprintf("%d", cat.Count), align.Left),
		bodyCell(4, formatMoney(cat.Total), align.Right),
	)
}

func centreRow(cb dto.CentreBreakdownDTO) core.Row {
	return row.New(5).Add(
		bodyCell(8, cb.Centre, align.Left),
		bodyCell(4, formatMoney(cb.Total), align.Right),
	)
}

func detailHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell(2, "Date"),
		headerCell(3, "Item"),
		headerCell(2, "Category"),
		headerCell(2, "Centre"),
		headerCell(3, "Amount"),
	)
}

func detailRow(e dto.ExpenseResponse) core.Row {
	return row.New(5).Add(
		bodyCell(2, e.Date.Format("02/01/2006"), align.Left),
		bodyCell(3, e.Item, align.Left),
		bodyCell(2, e.Category, align.Left),
		bodyCell(2, e.Centre, align.Left),
		bodyCell(3, formatMoney(e.Amount), align.Right),
	)
}

func headerCell(width int, label string) core.Col {
	return col.New(width).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary}),
	)
}

func bodyCell(width int, value string, a align.Type) core.Col {
	return col.New(width).Add(
		text.New(value, props.Text{Size: 8, Align: a}),
	)
}

// formatMoney renders a rupee amount with Indian digit grouping.
func formatMoney(d decimal.Decimal) string {
	f, _ := d.Float64()
	return inPrinter.Sprintf("Rs %v", number.Decimal(f,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
