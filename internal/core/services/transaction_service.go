package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"diu-alumnihub/internal/adapters/persistence/models"
	"diu-alumnihub/internal/adapters/persistence/repositories"
	"diu-alumnihub/internal/core/domain"

	"gorm.io/gorm"
)

// TransactionService drives the financial transaction review lifecycle
type TransactionService struct {
	txRepo repositories.TransactionRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(txRepo repositories.TransactionRepository) *TransactionService {
	return &TransactionService{txRepo: txRepo}
}

// CreateTransactionInput carries a new transaction
type CreateTransactionInput struct {
	Type            domain.TransactionType
	Amount          float64
	Description     string
	Currency        string
	Category        *string
	ReferenceNumber *string
	TransactionDate time.Time
	AttachmentURL   *string
	Payee           *string
	Payer           *string
}

// CreateTransaction records a new financial transaction. Its initial status
// depends on type and creator role: admin income is approved on entry,
// expenses always enter review.
func (s *TransactionService) CreateTransaction(ctx context.Context, actorID uint, roles domain.RoleList, input CreateTransactionInput) (*models.FinancialTransaction, error) {
	if err := validateTransactionInput(input); err != nil {
		return nil, err
	}
	if err := domain.CanCreateTransaction(roles, input.Type); err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = domain.DefaultMembershipFee.Currency
	}
	txDate := input.TransactionDate
	if txDate.IsZero() {
		txDate = time.Now()
	}

	status := domain.InitialTransactionStatus(input.Type, roles)
	tx := &models.FinancialTransaction{
		Type:            input.Type,
		Amount:          input.Amount,
		Description:     input.Description,
		Currency:        currency,
		Category:        input.Category,
		ReferenceNumber: input.ReferenceNumber,
		TransactionDate: txDate,
		Status:          status,
		CreatedBy:       actorID,
		AttachmentURL:   input.AttachmentURL,
		Payee:           input.Payee,
		Payer:           input.Payer,
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	s.appendHistory(ctx, tx.ID, status, actorID, "transaction created")

	log.Printf("✅ Transaction %d created [%s %s %.2f]", tx.ID, tx.Type, tx.Status, tx.Amount)
	return tx, nil
}

// GetTransaction returns a transaction. Callers without financial authority
// can only see their own.
func (s *TransactionService) GetTransaction(ctx context.Context, id, actorID uint, roles domain.RoleList) (*models.FinancialTransaction, error) {
	tx, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanListAllTransactions(roles) && tx.CreatedBy != actorID {
		return nil, fmt.Errorf("%w: you do not have permission to view this transaction", domain.ErrForbidden)
	}
	return tx, nil
}

// UpdateTransactionInput carries optional transaction updates
type UpdateTransactionInput struct {
	Amount          *float64
	Description     *string
	Category        *string
	ReferenceNumber *string
	TransactionDate *time.Time
	AttachmentURL   *string
	Payee           *string
	Payer           *string
}

// UpdateTransaction edits a transaction. The creator may edit until it is
// finalized; a rejected one must be resubmitted through SubmitForReview
// before it can be edited again. Admins may edit unconditionally.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id, actorID uint, roles domain.RoleList, input UpdateTransactionInput) (*models.FinancialTransaction, error) {
	tx, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := domain.CanUpdateTransaction(roles, actorID, tx.CreatedBy, tx.Status); err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if *input.Amount <= 0 {
			return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
		}
		tx.Amount = *input.Amount
	}
	if input.Description != nil {
		tx.Description = *input.Description
	}
	if input.Category != nil {
		tx.Category = input.Category
	}
	if input.ReferenceNumber != nil {
		tx.ReferenceNumber = input.ReferenceNumber
	}
	if input.TransactionDate != nil {
		tx.TransactionDate = *input.TransactionDate
	}
	if input.AttachmentURL != nil {
		tx.AttachmentURL = input.AttachmentURL
	}
	if input.Payee != nil {
		tx.Payee = input.Payee
	}
	if input.Payer != nil {
		tx.Payer = input.Payer
	}

	if err := s.txRepo.Update(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// SubmitForReview moves a draft or rejected transaction into the review
// queue. Resubmitting a rejected transaction clears the previous review.
func (s *TransactionService) SubmitForReview(ctx context.Context, id, actorID uint, roles domain.RoleList) (*models.FinancialTransaction, error) {
	tx, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !roles.IsAdmin() && tx.CreatedBy != actorID {
		return nil, fmt.Errorf("%w: you do not have permission to submit this transaction", domain.ErrForbidden)
	}

	if !domain.CanTransitionTransaction(tx.Status, domain.TransactionPendingReview) {
		return nil, fmt.Errorf("%w: cannot move transaction from %s to %s",
			domain.ErrInvalidTransition, tx.Status, domain.TransactionPendingReview)
	}

	note := "submitted for review"
	if tx.Status == domain.TransactionRejected {
		tx.RejectionReason = nil
		tx.ReviewedBy = nil
		tx.ReviewedAt = nil
		tx.ReviewNote = nil
		note = "resubmitted after rejection"
	}

	tx.Status = domain.TransactionPendingReview
	if err := s.txRepo.Update(ctx, tx); err != nil {
		return nil, err
	}

	s.appendHistory(ctx, tx.ID, domain.TransactionPendingReview, actorID, note)
	return tx, nil
}

// ReviewInput carries a reviewer's decision
type ReviewInput struct {
	Approve bool
	Note    string
	Reason  string
}

// ReviewTransaction approves or rejects a pending transaction. Rejection
// requires a reason.
func (s *TransactionService) ReviewTransaction(ctx context.Context, id, reviewerID uint, roles domain.RoleList, input ReviewInput) (*models.FinancialTransaction, error) {
	tx, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := domain.CanReviewTransaction(roles, tx.Type); err != nil {
		return nil, err
	}

	target := domain.TransactionRejected
	if input.Approve {
		target = domain.TransactionApproved
	}

	if !domain.CanTransitionTransaction(tx.Status, target) {
		return nil, fmt.Errorf("%w: cannot move transaction from %s to %s",
			domain.ErrInvalidTransition, tx.Status, target)
	}

	if !input.Approve && input.Reason == "" {
		return nil, domain.ErrRejectionReasonRequired
	}

	now := time.Now()
	tx.Status = target
	tx.ReviewedBy = &reviewerID
	tx.ReviewedAt = &now
	if input.Note != "" {
		tx.ReviewNote = &input.Note
	}
	if !input.Approve {
		tx.RejectionReason = &input.Reason
	} else {
		tx.RejectionReason = nil
	}

	if err := s.txRepo.Update(ctx, tx); err != nil {
		return nil, err
	}

	note := input.Note
	if note == "" {
		note = input.Reason
	}
	s.appendHistory(ctx, tx.ID, target, reviewerID, note)

	log.Printf("✅ Transaction %d reviewed [%s]", tx.ID, target)
	return tx, nil
}

// DeleteTransaction removes a transaction. Admins may delete any; creators
// only drafts and rejected ones.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id, actorID uint, roles domain.RoleList) error {
	tx, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if err := domain.CanDeleteTransaction(roles, actorID, tx.CreatedBy, tx.Status); err != nil {
		return err
	}

	return s.txRepo.Delete(ctx, id)
}

// ListTransactions returns transactions matching the filter. Callers without
// financial authority only see their own regardless of the filter.
func (s *TransactionService) ListTransactions(ctx context.Context, actorID uint, roles domain.RoleList, filter repositories.TransactionFilter, offset, limit int) ([]*models.FinancialTransaction, int64, error) {
	if !domain.CanListAllTransactions(roles) {
		filter.CreatedBy = &actorID
	}
	return s.txRepo.List(ctx, filter, offset, limit)
}

// PendingReview returns the review queue. Accountants only see expenses
// since income review is admin-only.
func (s *TransactionService) PendingReview(ctx context.Context, roles domain.RoleList, offset, limit int) ([]*models.FinancialTransaction, int64, error) {
	if !domain.CanListAllTransactions(roles) {
		return nil, 0, fmt.Errorf("%w: only admins or accountants can view the review queue", domain.ErrForbidden)
	}

	status := domain.TransactionPendingReview
	filter := repositories.TransactionFilter{Status: &status}
	if !roles.IsAdmin() {
		expense := domain.TransactionExpense
		filter.Type = &expense
	}
	return s.txRepo.List(ctx, filter, offset, limit)
}

// FinancialSummary aggregates approved totals over a period
type FinancialSummary struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpense  float64 `json:"total_expense"`
	Balance       float64 `json:"balance"`
	IncomeCount   int64   `json:"income_count"`
	ExpenseCount  int64   `json:"expense_count"`
	PendingReview int64   `json:"pending_review"`
}

// Summary computes approved income/expense totals and the current balance
func (s *TransactionService) Summary(ctx context.Context, roles domain.RoleList, start, end *time.Time) (*FinancialSummary, error) {
	if !domain.CanListAllTransactions(roles) {
		return nil, fmt.Errorf("%w: only admins or accountants can view the financial summary", domain.ErrForbidden)
	}

	income, incomeCount, err := s.txRepo.SumByTypeAndStatus(ctx, domain.TransactionIncome, domain.TransactionApproved, start, end)
	if err != nil {
		return nil, err
	}
	expense, expenseCount, err := s.txRepo.SumByTypeAndStatus(ctx, domain.TransactionExpense, domain.TransactionApproved, start, end)
	if err != nil {
		return nil, err
	}

	status := domain.TransactionPendingReview
	_, pending, err := s.txRepo.List(ctx, repositories.TransactionFilter{Status: &status}, 0, 1)
	if err != nil {
		return nil, err
	}

	return &FinancialSummary{
		TotalIncome:   income,
		TotalExpense:  expense,
		Balance:       income - expense,
		IncomeCount:   incomeCount,
		ExpenseCount:  expenseCount,
		PendingReview: pending,
	}, nil
}

func (s *TransactionService) appendHistory(ctx context.Context, txID uint, status domain.TransactionStatus, actorID uint, note string) {
	entry := &models.TransactionStatusHistory{
		TransactionID: txID,
		Status:        status,
		ChangedBy:     actorID,
		Note:          note,
	}
	if err := s.txRepo.AppendHistory(ctx, entry); err != nil {
		log.Printf("⚠️  Failed to append transaction history for transaction %d: %v", txID, err)
	}
}

func (s *TransactionService) getByID(ctx context.Context, id uint) (*models.FinancialTransaction, error) {
	tx, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return tx, nil
}

func validateTransactionInput(input CreateTransactionInput) error {
	if !input.Type.IsValid() {
		return fmt.Errorf("%w: unknown transaction type %q", domain.ErrValidation, input.Type)
	}
	if input.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if input.Description == "" {
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	return nil
}
