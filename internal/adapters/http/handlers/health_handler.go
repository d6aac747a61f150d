package handlers

import (
	"diu-alumnihub/internal/config"
	"diu-alumnihub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct{}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check reports service and database health
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := config.HealthCheck(); err != nil {
		dbStatus = "unavailable"
	}

	return response.Success(c, "", fiber.Map{
		"status":   "ok",
		"database": dbStatus,
	})
}
