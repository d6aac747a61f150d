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

// MembershipService drives the membership request lifecycle
type MembershipService struct {
	requestRepo repositories.MembershipRequestRepository
	txRepo      repositories.TransactionRepository
	userService *UserService
	settings    *SettingsService
	gateway     PaymentGateway
	mailer      Mailer
}

// NewMembershipService creates a new membership service
func NewMembershipService(
	requestRepo repositories.MembershipRequestRepository,
	txRepo repositories.TransactionRepository,
	userService *UserService,
	settings *SettingsService,
	gateway PaymentGateway,
	mailer Mailer,
) *MembershipService {
	return &MembershipService{
		requestRepo: requestRepo,
		txRepo:      txRepo,
		userService: userService,
		settings:    settings,
		gateway:     gateway,
		mailer:      mailer,
	}
}

// CreateRequest opens a new membership request for the user. The profile must
// be complete and the user must not already have an active request.
func (s *MembershipService) CreateRequest(ctx context.Context, userID uint) (*models.MembershipRequest, error) {
	user, err := s.userService.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.IsProfileComplete() {
		return nil, domain.ErrProfileIncomplete
	}

	active, err := s.requestRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, domain.ErrActiveRequestExists
	}

	request := &models.MembershipRequest{
		UserID: userID,
		Status: domain.MembershipDraft,
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.appendHistory(ctx, request.ID, domain.MembershipDraft, userID, "request submitted")
	s.notifyStatusChange(ctx, request, "")

	log.Printf("✅ Membership request %d created for user %d", request.ID, userID)
	return request, nil
}

// GetRequest returns a membership request by ID with its history
func (s *MembershipService) GetRequest(ctx context.Context, id uint) (*models.MembershipRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return request, nil
}

// GetMyRequest returns the latest membership request of a user
func (s *MembershipService) GetMyRequest(ctx context.Context, userID uint) (*models.MembershipRequest, error) {
	request, err := s.requestRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return request, nil
}

// ListRequests returns membership requests, optionally filtered by status
func (s *MembershipService) ListRequests(ctx context.Context, status *domain.MembershipStatus, offset, limit int) ([]*models.MembershipRequest, int64, error) {
	if status != nil && !status.IsValid() {
		return nil, 0, fmt.Errorf("%w: unknown membership status %q", domain.ErrValidation, *status)
	}
	return s.requestRepo.List(ctx, status, offset, limit)
}

// UpdateStatusInput carries a reviewer's status decision
type UpdateStatusInput struct {
	Status domain.MembershipStatus
	Reason string
	Note   string
}

// UpdateStatus moves a membership request to a new lifecycle state. Moving to
// payment_required attaches the configured fee and starts a payment session;
// a gateway failure there leaves the request payable later. Moving to approved
// grants membership. Rejection accepts an optional reason.
func (s *MembershipService) UpdateStatus(ctx context.Context, requestID, actorID uint, input UpdateStatusInput) (*models.MembershipRequest, error) {
	if !input.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown membership status %q", domain.ErrValidation, input.Status)
	}

	request, err := s.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransitionMembership(request.Status, input.Status) {
		return nil, fmt.Errorf("%w: cannot move membership request from %s to %s",
			domain.ErrInvalidTransition, request.Status, input.Status)
	}

	switch input.Status {
	case domain.MembershipPaymentRequired:
		s.prepareForPayment(ctx, request)

	case domain.MembershipApproved:
		if _, err := s.userService.ApproveMembership(ctx, request.UserID); err != nil {
			return nil, err
		}

	case domain.MembershipRejected:
		if input.Reason != "" {
			request.RejectionReason = &input.Reason
		}
	}

	request.Status = input.Status
	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	note := input.Note
	if note == "" && input.Reason != "" {
		note = input.Reason
	}
	s.appendHistory(ctx, request.ID, input.Status, actorID, note)
	s.notifyStatusChange(ctx, request, input.Reason)

	return request, nil
}

// RecordPayment verifies a completed gateway payment and approves the
// request. Unlike payment initiation, a verification failure is fatal.
func (s *MembershipService) RecordPayment(ctx context.Context, requestID uint, gatewayTxID string) (*models.MembershipRequest, error) {
	request, err := s.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.Status != domain.MembershipPaymentRequired {
		return nil, fmt.Errorf("%w: request %d is not awaiting payment", domain.ErrInvalidTransition, requestID)
	}

	amount := s.settings.GetMembershipFee(ctx).Amount
	if request.PaymentAmount != nil {
		amount = *request.PaymentAmount
	}

	verification, err := s.gateway.VerifyPayment(ctx, gatewayTxID, amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentVerificationFailed, err)
	}
	if !verification.Valid {
		return nil, domain.ErrPaymentVerificationFailed
	}

	paid := "paid"
	request.PaymentStatus = &paid
	request.PaymentTransactionID = &verification.TransactionID

	if _, err := s.userService.ApproveMembership(ctx, request.UserID); err != nil {
		return nil, err
	}

	request.Status = domain.MembershipApproved
	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	s.appendHistory(ctx, request.ID, domain.MembershipApproved, request.UserID, "payment verified")
	s.recordMembershipIncome(ctx, request, verification)
	s.notifyStatusChange(ctx, request, "")

	log.Printf("✅ Payment recorded for membership request %d [%s]", request.ID, verification.TransactionID)
	return request, nil
}

// prepareForPayment attaches the configured fee and starts a payment session.
// A gateway failure is logged and leaves PaymentURL unset.
func (s *MembershipService) prepareForPayment(ctx context.Context, request *models.MembershipRequest) {
	fee := s.settings.GetMembershipFee(ctx)
	request.PaymentAmount = &fee.Amount

	flags := s.settings.GetFeatureFlags(ctx)
	if !flags.EnableMembershipPayment {
		return
	}

	user, err := s.userService.GetUser(ctx, request.UserID)
	if err != nil {
		log.Printf("⚠️  Cannot start payment for request %d: %v", request.ID, err)
		return
	}

	initiation, err := s.gateway.InitiatePayment(ctx, PaymentRequest{
		OrderID:       fmt.Sprintf("MEM-%d-%d", request.ID, time.Now().Unix()),
		Amount:        fee.Amount,
		Currency:      fee.Currency,
		CustomerName:  user.FullName(),
		CustomerEmail: user.Email,
		CustomerPhone: user.Phone,
	})
	if err != nil || !initiation.Success {
		log.Printf("⚠️  Payment initiation failed for request %d: %v", request.ID, err)
		return
	}

	request.PaymentURL = &initiation.PaymentURL
	request.PaymentTransactionID = &initiation.TransactionID
}

// recordMembershipIncome books the verified fee as an approved income
// transaction. Bookkeeping must not undo a verified payment, so failures are
// only logged.
func (s *MembershipService) recordMembershipIncome(ctx context.Context, request *models.MembershipRequest, verification *PaymentVerification) {
	currency := verification.Currency
	if currency == "" {
		currency = domain.DefaultMembershipFee.Currency
	}

	category := "membership_fee"
	tx := &models.FinancialTransaction{
		Type:            domain.TransactionIncome,
		Amount:          verification.Amount,
		Currency:        currency,
		Description:     fmt.Sprintf("Membership fee for request %d", request.ID),
		Category:        &category,
		ReferenceNumber: &verification.TransactionID,
		TransactionDate: time.Now(),
		Status:          domain.TransactionApproved,
		CreatedBy:       request.UserID,
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		log.Printf("⚠️  Failed to record membership fee income for request %d: %v", request.ID, err)
	}
}

func (s *MembershipService) appendHistory(ctx context.Context, requestID uint, status domain.MembershipStatus, actorID uint, note string) {
	entry := &models.MembershipStatusHistory{
		RequestID: requestID,
		Status:    status,
		ChangedBy: actorID,
		Note:      note,
	}
	if err := s.requestRepo.AppendHistory(ctx, entry); err != nil {
		log.Printf("⚠️  Failed to append membership history for request %d: %v", requestID, err)
	}
}

// notifyStatusChange emails the applicant about the new state. Delivery is
// best effort.
func (s *MembershipService) notifyStatusChange(ctx context.Context, request *models.MembershipRequest, reason string) {
	if s.mailer == nil {
		return
	}
	if !s.settings.GetFeatureFlags(ctx).EnableEmailNotifications {
		return
	}

	user, err := s.userService.GetUser(ctx, request.UserID)
	if err != nil {
		log.Printf("⚠️  Cannot notify user %d: %v", request.UserID, err)
		return
	}

	paymentURL := ""
	if request.PaymentURL != nil {
		paymentURL = *request.PaymentURL
	}
	if err := s.mailer.SendMembershipStatusEmail(ctx, user.Email, user.FullName(), request.Status, reason, paymentURL); err != nil {
		log.Printf("⚠️  Failed to send status email to %s: %v", user.Email, err)
	}
}
