package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thesarya/expense/internal/application/dto"
	"github.com/thesarya/expense/internal/application/insights"
	"github.com/thesarya/expense/internal/domain"
)

// DashboardHandler handles the admin dashboard endpoint.
type DashboardHandler struct {
	uc *insights.UseCase
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(uc *insights.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary returns the global rollup across every centre for admins.
// GET /api/dashboard/summary
//
// Same response shape as /api/insights; the route is admin-only and the
// centre/month/category/user query filters apply to the whole dataset.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	var req dto.InsightsRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "invalid query parameters"})
	}
	out, err := h.uc.Get(GetCentre(c), GetRole(c), req)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month must be between 1 and 12"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
