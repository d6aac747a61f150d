package handlers

import (
	"strconv"
	"time"

	"diu-alumnihub/internal/adapters/http/middleware"
	"diu-alumnihub/internal/adapters/persistence/repositories"
	"diu-alumnihub/internal/core/domain"
	"diu-alumnihub/internal/core/services"
	"diu-alumnihub/internal/pkg/pagination"
	"diu-alumnihub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TransactionHandler handles financial transaction endpoints
type TransactionHandler struct {
	txService *services.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(txService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{txService: txService}
}

type createTransactionRequest struct {
	Type            string  `json:"type"`
	Amount          float64 `json:"amount"`
	Description     string  `json:"description"`
	Currency        string  `json:"currency"`
	Category        *string `json:"category"`
	ReferenceNumber *string `json:"reference_number"`
	TransactionDate string  `json:"transaction_date"`
	AttachmentURL   *string `json:"attachment_url"`
	Payee           *string `json:"payee"`
	Payer           *string `json:"payer"`
}

// Create records a new financial transaction
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var req createTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := services.CreateTransactionInput{
		Type:            domain.TransactionType(req.Type),
		Amount:          req.Amount,
		Description:     req.Description,
		Currency:        req.Currency,
		Category:        req.Category,
		ReferenceNumber: req.ReferenceNumber,
		AttachmentURL:   req.AttachmentURL,
		Payee:           req.Payee,
		Payer:           req.Payer,
	}
	if req.TransactionDate != "" {
		date, err := time.Parse("2006-01-02", req.TransactionDate)
		if err != nil {
			return response.BadRequest(c, "transaction_date must be in YYYY-MM-DD format")
		}
		input.TransactionDate = date
	}

	tx, err := h.txService.CreateTransaction(c.Context(), middleware.UserID(c), middleware.Roles(c), input)
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Created(c, "Transaction created", tx)
}

// Get returns a transaction by ID
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	tx, err := h.txService.GetTransaction(c.Context(), id, middleware.UserID(c), middleware.Roles(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Success(c, "", tx)
}

type updateTransactionRequest struct {
	Amount          *float64 `json:"amount"`
	Description     *string  `json:"description"`
	Category        *string  `json:"category"`
	ReferenceNumber *string  `json:"reference_number"`
	TransactionDate *string  `json:"transaction_date"`
	AttachmentURL   *string  `json:"attachment_url"`
	Payee           *string  `json:"payee"`
	Payer           *string  `json:"payer"`
}

// Update edits a transaction
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req updateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := services.UpdateTransactionInput{
		Amount:          req.Amount,
		Description:     req.Description,
		Category:        req.Category,
		ReferenceNumber: req.ReferenceNumber,
		AttachmentURL:   req.AttachmentURL,
		Payee:           req.Payee,
		Payer:           req.Payer,
	}
	if req.TransactionDate != nil {
		date, err := time.Parse("2006-01-02", *req.TransactionDate)
		if err != nil {
			return response.BadRequest(c, "transaction_date must be in YYYY-MM-DD format")
		}
		input.TransactionDate = &date
	}

	tx, err := h.txService.UpdateTransaction(c.Context(), id, middleware.UserID(c), middleware.Roles(c), input)
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Success(c, "Transaction updated", tx)
}

// Submit moves a draft transaction into the review queue
func (h *TransactionHandler) Submit(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	tx, err := h.txService.SubmitForReview(c.Context(), id, middleware.UserID(c), middleware.Roles(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Success(c, "Transaction submitted for review", tx)
}

type reviewTransactionRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
	Reason  string `json:"reason"`
}

// Review approves or rejects a pending transaction
func (h *TransactionHandler) Review(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req reviewTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	tx, err := h.txService.ReviewTransaction(c.Context(), id, middleware.UserID(c), middleware.Roles(c), services.ReviewInput{
		Approve: req.Approve,
		Note:    req.Note,
		Reason:  req.Reason,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Success(c, "Transaction reviewed", tx)
}

// Delete removes a transaction
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.txService.DeleteTransaction(c.Context(), id, middleware.UserID(c), middleware.Roles(c)); err != nil {
		return handleServiceError(c, err)
	}

	return response.Success(c, "Transaction deleted", nil)
}

// List returns transactions matching the query filters
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filter := parseTransactionFilter(c)

	txs, total, err := h.txService.ListTransactions(c.Context(), middleware.UserID(c), middleware.Roles(c), filter, params.Offset, params.Limit)
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Success(c, "", pagination.NewResponse(txs, params, total))
}

// PendingReview returns the review queue
func (h *TransactionHandler) PendingReview(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	txs, total, err := h.txService.PendingReview(c.Context(), middleware.Roles(c), params.Offset, params.Limit)
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Success(c, "", pagination.NewResponse(txs, params, total))
}

// Summary returns approved income/expense totals and the balance
func (h *TransactionHandler) Summary(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	summary, err := h.txService.Summary(c.Context(), middleware.Roles(c), start, end)
	if err != nil {
		return handleServiceError(c, err)
	}

	return response.Success(c, "", summary)
}

func parseTransactionFilter(c *fiber.Ctx) repositories.TransactionFilter {
	var filter repositories.TransactionFilter

	if raw := c.Query("type"); raw != "" {
		t := domain.TransactionType(raw)
		filter.Type = &t
	}
	if raw := c.Query("status"); raw != "" {
		s := domain.TransactionStatus(raw)
		filter.Status = &s
	}
	if raw := c.Query("category"); raw != "" {
		filter.Category = &raw
	}
	if raw := c.Query("created_by"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			id := uint(parsed)
			filter.CreatedBy = &id
		}
	}
	if start, end, err := parseDateRangeValues(c.Query("start_date"), c.Query("end_date")); err == nil {
		filter.StartDate = start
		filter.EndDate = end
	}

	return filter
}

func parseDateRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	return parseDateRangeValues(c.Query("start_date"), c.Query("end_date"))
}

func parseDateRangeValues(startRaw, endRaw string) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if startRaw != "" {
		parsed, err := time.Parse("2006-01-02", startRaw)
		if err != nil {
			return nil, nil, err
		}
		start = &parsed
	}
	if endRaw != "" {
		parsed, err := time.Parse("2006-01-02", endRaw)
		if err != nil {
			return nil, nil, err
		}
		// Include the whole end day
		parsed = parsed.Add(24*time.Hour - time.Nanosecond)
		end = &parsed
	}
	return start, end, nil
}
