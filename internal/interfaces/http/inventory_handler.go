package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thesarya/expense/internal/application/dto"
	"github.com/thesarya/expense/internal/application/inventory"
	"github.com/thesarya/expense/internal/domain"
)

// InventoryHandler handles inventory CRUD and stock action endpoints.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler builds the handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Create godoc
// @Summary      Create an inventory item
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryRequest  true  "item_name, category, quantity, item_type"
// @Success      201   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Create(GetCentre(c), GetRole(c), in)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List inventory items
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Category filter (exact match)."
// @Param        search    query  string  false  "Name search (substring)."
// @Param        limit     query  int     false  "Page size."
// @Param        offset    query  int     false  "Page offset."
// @Success      200  {object}  dto.InventoryListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var req dto.ListInventoryRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "invalid query parameters"})
	}
	out, err := h.uc.List(GetCentre(c), GetRole(c), req)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Update an inventory item (non-quantity fields)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Item ID"
// @Param        body  body  dto.UpdateInventoryRequest  true  "fields to change"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Update(c.Params("id"), GetCentre(c), GetRole(c), in)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete an inventory item
// @Tags         inventory
// @Security     Bearer
// @Param        id  path  string  true  "Item ID"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id"), GetCentre(c), GetRole(c)); err != nil {
		return inventoryError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Use godoc
// @Summary      Consume stock units
// @Description  Decrements the quantity under a row lock and stamps last_used.
//               Refuses to go below zero.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Item ID"
// @Param        body  body  dto.InventoryActionRequest  true  "count"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/use [post]
func (h *InventoryHandler) Use(c *fiber.Ctx) error {
	count, ok := actionCount(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Use(c.Context(), c.Params("id"), GetCentre(c), GetRole(c), count)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(out)
}

// Damage godoc
// @Summary      Mark stock units as damaged
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Item ID"
// @Param        body  body  dto.InventoryActionRequest  true  "count"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/damage [post]
func (h *InventoryHandler) Damage(c *fiber.Ctx) error {
	count, ok := actionCount(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Damage(c.Context(), c.Params("id"), GetCentre(c), GetRole(c), count)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(out)
}

// Repair godoc
// @Summary      Return repaired units to stock
// @Description  Decrements the damaged counter (floored at zero) and adds the
//               repaired units back to the quantity.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Item ID"
// @Param        body  body  dto.InventoryActionRequest  true  "count"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/repair [post]
func (h *InventoryHandler) Repair(c *fiber.Ctx) error {
	count, ok := actionCount(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Repair(c.Context(), c.Params("id"), GetCentre(c), GetRole(c), count)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(out)
}

// SetQuantity godoc
// @Summary      Set the absolute quantity of an item
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Item ID"
// @Param        body  body  dto.InventoryActionRequest  true  "count (new absolute quantity)"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/quantity [post]
func (h *InventoryHandler) SetQuantity(c *fiber.Ctx) error {
	var in dto.InventoryActionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.Count < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "count must not be negative"})
	}
	out, err := h.uc.SetQuantity(c.Context(), c.Params("id"), GetCentre(c), GetRole(c), in.Count)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(out)
}

// Assign godoc
// @Summary      Assign an asset to a person
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Item ID"
// @Param        body  body  dto.AssignRequest  true  "assigned_to"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/assign [post]
func (h *InventoryHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.AssignedTo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "assigned_to is required"})
	}
	out, err := h.uc.Assign(c.Context(), c.Params("id"), GetCentre(c), GetRole(c), in.AssignedTo)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(out)
}

// actionCount parses and validates the count body shared by the stock actions.
// On failure it writes the 400 response and reports ok=false.
func actionCount(c *fiber.Ctx) (count int, ok bool) {
	var in dto.InventoryActionRequest
	if err := c.BodyParser(&in); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
		return 0, false
	}
	if in.Count <= 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "count must be greater than zero"})
		return 0, false
	}
	return in.Count, true
}

// inventoryError maps domain errors to HTTP responses.
func inventoryError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "inventory item not found"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid inventory data"})
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "item belongs to another centre"})
	case domain.ErrInsufficientStock:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "not enough units in stock"})
	case domain.ErrConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "only assets can be assigned"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
