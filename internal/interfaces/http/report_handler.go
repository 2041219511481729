package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thesarya/expense/internal/application/dto"
	"github.com/thesarya/expense/internal/application/reports"
	"github.com/thesarya/expense/internal/domain"
)

// ReportHandler handles balance-sheet exports (JSON, PDF, XLSX).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler builds the handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// BalanceSheet godoc
// @Summary      Balance-sheet report as JSON
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string    false  "Period start (YYYY-MM-DD)."
// @Param        end_date    query  string    false  "Period end, inclusive (YYYY-MM-DD)."
// @Param        centre      query  string    false  "Centre filter (admin only)."
// @Param        category    query  string    false  "Category filter."
// @Param        items       query  []string  false  "Item names to include."
// @Success      200  {object}  dto.BalanceSheetResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/balance-sheet [get]
func (h *ReportHandler) BalanceSheet(c *fiber.Ctx) error {
	req, ok := parseReportRequest(c)
	if !ok {
		return nil
	}
	out, err := h.uc.BalanceSheet(GetCentre(c), GetRole(c), req)
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(out)
}

// BalanceSheetPDF godoc
// @Summary      Balance-sheet report as PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        start_date  query  string  false  "Period start (YYYY-MM-DD)."
// @Param        end_date    query  string  false  "Period end, inclusive (YYYY-MM-DD)."
// @Param        centre      query  string  false  "Centre filter (admin only)."
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/balance-sheet.pdf [get]
func (h *ReportHandler) BalanceSheetPDF(c *fiber.Ctx) error {
	req, ok := parseReportRequest(c)
	if !ok {
		return nil
	}
	pdf, err := h.uc.BalanceSheetPDF(GetCentre(c), GetRole(c), req)
	if err != nil {
		return reportError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="balance-sheet.pdf"`)
	return c.Send(pdf)
}

// BalanceSheetXLSX godoc
// @Summary      Balance-sheet report as an XLSX workbook
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        start_date  query  string  false  "Period start (YYYY-MM-DD)."
// @Param        end_date    query  string  false  "Period end, inclusive (YYYY-MM-DD)."
// @Param        centre      query  string  false  "Centre filter (admin only)."
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/balance-sheet.xlsx [get]
func (h *ReportHandler) BalanceSheetXLSX(c *fiber.Ctx) error {
	req, ok := parseReportRequest(c)
	if !ok {
		return nil
	}
	book, err := h.uc.BalanceSheetXLSX(GetCentre(c), GetRole(c), req)
	if err != nil {
		return reportError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="balance-sheet.xlsx"`)
	return c.Send(book)
}

func parseReportRequest(c *fiber.Ctx) (dto.BalanceSheetRequest, bool) {
	var req dto.BalanceSheetRequest
	if err := c.QueryParser(&req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "invalid query parameters"})
		return req, false
	}
	return req, true
}

func reportError(c *fiber.Ctx, err error) error {
	if err == domain.ErrInvalidInput {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid date range"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
