package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thesarya/expense/internal/application/dto"
	"github.com/thesarya/expense/internal/application/expense"
	"github.com/thesarya/expense/internal/domain"
)

// ExpenseHandler handles the expense CRUD endpoints.
type ExpenseHandler struct {
	uc *expense.UseCase
}

// NewExpenseHandler builds the handler.
func NewExpenseHandler(uc *expense.UseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

// Create godoc
// @Summary      Record an expense
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "amount, category, item, payment_method"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Create(GetUserID(c), GetCentre(c), GetRole(c), in)
	if err != nil {
		return expenseError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List expenses
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Category filter (exact match)."
// @Param        search    query  string  false  "Free-text search over item, category and note."
// @Param        period    query  string  false  "week | month | all (default all)."
// @Param        limit     query  int     false  "Page size."
// @Param        offset    query  int     false  "Page offset."
// @Success      200  {object}  dto.ExpenseListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	var req dto.ListExpensesRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "invalid query parameters"})
	}
	out, err := h.uc.List(GetCentre(c), GetRole(c), req)
	if err != nil {
		return expenseError(c, err)
	}
	return c.JSON(out)
}

// GetLast godoc
// @Summary      Last expense recorded by the authenticated user
// @Description  Used by the client to prefill a duplicate entry.
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ExpenseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/last [get]
func (h *ExpenseHandler) GetLast(c *fiber.Ctx) error {
	out, err := h.uc.GetLast(GetUserID(c))
	if err != nil {
		return expenseError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Update an expense
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Expense ID"
// @Param        body  body  dto.UpdateExpenseRequest  true  "fields to change"
// @Success      200   {object}  dto.ExpenseResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Update(c.Params("id"), GetCentre(c), GetRole(c), in)
	if err != nil {
		return expenseError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete an expense
// @Tags         expenses
// @Security     Bearer
// @Param        id  path  string  true  "Expense ID"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id"), GetCentre(c), GetRole(c)); err != nil {
		return expenseError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// expenseError maps domain errors to HTTP responses.
func expenseError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "expense not found"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid expense data"})
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "expense belongs to another centre"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
