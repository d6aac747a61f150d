package handlers

import (
	"strconv"
	"time"

	"diu-alumnihub/internal/adapters/http/middleware"
	"diu-alumnihub/internal/adapters/persistence/models"
	"diu-alumnihub/internal/adapters/persistence/repositories"
	"diu-alumnihub/internal/core/domain"
	"diu-alumnihub/internal/core/services"
	"diu-alumnihub/internal/pkg/pagination"
	"diu-alumnihub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user directory endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type updateProfileRequest struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	ProfilePicture *string `json:"profile_picture"`
	Phone          *string `json:"phone"`
	Batch          *string `json:"batch"`
	DateOfBirth    *string `json:"date_of_birth"`
	Company        *string `json:"company"`
	Designation    *string `json:"designation"`
	PassingYear    *int    `json:"passing_year"`
	EducationLevel *string `json:"education_level"`
	Bio            *string `json:"bio"`
	LinkedinURL    *string `json:"linkedin_url"`
}

// UpdateMe updates the authenticated user's profile
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := services.UpdateProfileInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		ProfilePicture: req.ProfilePicture,
		Phone:          req.Phone,
		Batch:          req.Batch,
		Company:        req.Company,
		Designation:    req.Designation,
		PassingYear:    req.PassingYear,
		EducationLevel: req.EducationLevel,
		Bio:            req.Bio,
		LinkedinURL:    req.LinkedinURL,
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return response.BadRequest(c, "date_of_birth must be in YYYY-MM-DD format")
		}
		input.DateOfBirth = &dob
	}

	user, err := h.userService.UpdateProfile(c.Context(), middleware.UserID(c), input)
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Success(c, "Profile updated", user.ToResponse())
}

// List returns the user directory with filters and pagination
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := repositories.UserFilter{
		Batch: c.Query("batch"),
		Role:  domain.Role(c.Query("role")),
	}
	if year := c.Query("passing_year"); year != "" {
		if parsed, err := strconv.Atoi(year); err == nil {
			filter.PassingYear = parsed
		}
	}
	if c.Query("active") == "true" {
		filter.ActiveOnly = true
	}

	users, total, err := h.userService.ListUsers(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Success(c, "", pagination.NewResponse(toUserResponses(users), params, total))
}

// Search searches the directory by name, email or membership ID
func (h *UserHandler) Search(c *fiber.Ctx) error {
	term := c.Query("q")
	if term == "" {
		return response.BadRequest(c, "Search term is required")
	}

	users, err := h.userService.SearchUsers(c.Context(), term, pagination.DefaultLimit)
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Success(c, "", toUserResponses(users))
}

// Get returns a user by ID
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userService.GetUser(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Success(c, "", user.ToResponse())
}

type grantRoleRequest struct {
	Role string `json:"role"`
}

// GrantRole adds a role to a user
func (h *UserHandler) GrantRole(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req grantRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.GrantRole(c.Context(), id, domain.Role(req.Role))
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Success(c, "Role granted", user.ToResponse())
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

// SetActive activates or deactivates a user account
func (h *UserHandler) SetActive(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req setActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.SetActive(c.Context(), id, req.Active)
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Success(c, "User updated", user.ToResponse())
}

func toUserResponses(users []*models.User) []*models.UserResponse {
	out := make([]*models.UserResponse, len(users))
	for i, u := range users {
		out[i] = u.ToResponse()
	}
	return out
}
