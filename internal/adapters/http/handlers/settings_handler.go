package handlers

import (
	"encoding/json"

	"diu-alumnihub/internal/core/services"
	"diu-alumnihub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SettingsHandler handles system settings endpoints
type SettingsHandler struct {
	settingsService *services.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

type createSettingRequest struct {
	Key         string          `json:"key"`
	Value       json.RawMessage `json:"value"`
	Description string          `json:"description"`
}

// Create creates a new setting
func (h *SettingsHandler) Create(c *fiber.Ctx) error {
	var req createSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Key == "" || len(req.Value) == 0 {
		return response.BadRequest(c, "key and value are required")
	}

	setting, err := h.settingsService.CreateSetting(c.Context(), req.Key, req.Value, req.Description)
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Created(c, "Setting created", setting)
}

// Get returns a setting by key
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	key := c.Params("key")

	setting, err := h.settingsService.GetSetting(c.Context(), key)
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Success(c, "", setting)
}

// List returns all settings
func (h *SettingsHandler) List(c *fiber.Ctx) error {
	settings, err := h.settingsService.ListSettings(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Success(c, "", settings)
}

type updateSettingRequest struct {
	Value       json.RawMessage `json:"value"`
	Description *string         `json:"description"`
	IsActive    *bool           `json:"is_active"`
}

// Update updates an existing setting by key
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	key := c.Params("key")

	var req updateSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	setting, err := h.settingsService.UpdateSetting(c.Context(), key, services.UpdateSettingInput{
		Value:       req.Value,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Success(c, "Setting updated", setting)
}

// Delete removes a setting by key
func (h *SettingsHandler) Delete(c *fiber.Ctx) error {
	key := c.Params("key")

	if err := h.settingsService.DeleteSetting(c.Context(), key); err != nil {
		return handleServiceError(c, err)
	}

	return response.Success(c, "Setting deleted", nil)
}
