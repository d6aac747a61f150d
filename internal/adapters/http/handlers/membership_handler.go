package handlers

import (
	"diu-alumnihub/internal/adapters/http/middleware"
	"diu-alumnihub/internal/core/domain"
	"diu-alumnihub/internal/core/services"
	"diu-alumnihub/internal/pkg/pagination"
	"diu-alumnihub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MembershipHandler handles membership request endpoints
type MembershipHandler struct {
	membershipService *services.MembershipService
}

// NewMembershipHandler creates a new membership handler
func NewMembershipHandler(membershipService *services.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

// Create opens a new membership request for the authenticated user
func (h *MembershipHandler) Create(c *fiber.Ctx) error {
	request, err := h.membershipService.CreateRequest(c.Context(), middleware.UserID(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Created(c, "Membership request submitted", request)
}

// GetMy returns the authenticated user's latest membership request
func (h *MembershipHandler) GetMy(c *fiber.Ctx) error {
	request, err := h.membershipService.GetMyRequest(c.Context(), middleware.UserID(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Success(c, "", request)
}

// Get returns a membership request by ID
func (h *MembershipHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	request, err := h.membershipService.GetRequest(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Success(c, "", request)
}

// List returns membership requests, optionally filtered by status
func (h *MembershipHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	var status *domain.MembershipStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.MembershipStatus(raw)
		status = &s
	}

	requests, total, err := h.membershipService.ListRequests(c.Context(), status, params.Offset, params.Limit)
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Success(c, "", pagination.NewResponse(requests, params, total))
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
	Note   string `json:"note"`
}

// UpdateStatus moves a membership request to a new lifecycle state
func (h *MembershipHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	request, err := h.membershipService.UpdateStatus(c.Context(), id, middleware.UserID(c), services.UpdateStatusInput{
		Status: domain.MembershipStatus(req.Status),
		Reason: req.Reason,
		Note:   req.Note,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Success(c, "Membership request updated", request)
}

type recordPaymentRequest struct {
	TransactionID string `json:"transaction_id"`
}

// RecordPayment verifies a completed gateway payment and approves the request
func (h *MembershipHandler) RecordPayment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req recordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.TransactionID == "" {
		return response.BadRequest(c, "transaction_id is required")
	}

	request, err := h.membershipService.RecordPayment(c.Context(), id, req.TransactionID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Success(c, "Payment recorded", request)
}
