package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thesarya/expense/internal/application/dto"
	"github.com/thesarya/expense/internal/application/insights"
	"github.com/thesarya/expense/internal/domain"
)

// InsightsHandler handles the monthly rollup endpoint.
type InsightsHandler struct {
	uc *insights.UseCase
}

// NewInsightsHandler builds the handler.
func NewInsightsHandler(uc *insights.UseCase) *InsightsHandler {
	return &InsightsHandler{uc: uc}
}

// Get godoc
// @Summary      Spending and stock rollup for the caller's centre
// @Description  Aggregated totals, top items and spenders, month-over-month
//               comparison, stock alerts, performance score and recommendations.
//               Staff tokens are pinned to their centre; admins may pass any
//               centre filter.
// @Tags         insights
// @Security     Bearer
// @Produce      json
// @Param        centre    query  string  false  "Centre filter (admin only)."
// @Param        category  query  string  false  "Category filter (exact match)."
// @Param        user      query  string  false  "Creator email filter."
// @Param        month     query  int     false  "Calendar month of the current year (1-12)."
// @Param        recent_n  query  int     false  "Recent expenses to return (default 5)."
// @Success      200  {object}  dto.InsightsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/insights [get]
func (h *InsightsHandler) Get(c *fiber.Ctx) error {
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
