package handlers

import (
	"errors"
	"log"

	"diu-alumnihub/internal/core/domain"
	"diu-alumnihub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// handleServiceError maps service error categories to HTTP responses
func handleServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrConflict):
		return response.Conflict(c, err.Error())
	default:
		log.Printf("❌ Unhandled service error: %v", err)
		return response.InternalServerError(c, "Something went wrong")
	}
}

// parseID reads a uint path parameter
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id parameter")
	}
	return uint(id), nil
}
