package handlers

import (
	"diu-alumnihub/internal/adapters/http/middleware"
	"diu-alumnihub/internal/core/services"
	"diu-alumnihub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles admin dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns the dashboard snapshot
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetStats(c.Context(), middleware.Roles(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Success(c, "", stats)
}
