package handlers

import (
	"sfms-backend/internal/core/services"
	"sfms-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	service *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Summary returns current fund totals
// @Summary Fund summary
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.service.GetFundSummary(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute fund summary")
	}

	return response.Success(c, "Fund summary retrieved successfully", fiber.Map{
		"summary": summary,
	})
}
