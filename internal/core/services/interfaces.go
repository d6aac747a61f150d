package services

import (
	"context"

	"diu-alumnihub/internal/core/domain"
)

// PaymentRequest carries what the gateway needs to start a payment session
type PaymentRequest struct {
	OrderID       string
	Amount        float64
	Currency      string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// PaymentInitiation is the result of starting a payment session
type PaymentInitiation struct {
	Success       bool
	TransactionID string
	PaymentURL    string
	FailReason    string
}

// PaymentVerification is the result of validating a completed payment
type PaymentVerification struct {
	Valid         bool
	TransactionID string
	Amount        float64
	Currency      string
}

// PaymentGateway abstracts the payment provider
type PaymentGateway interface {
	InitiatePayment(ctx context.Context, req PaymentRequest) (*PaymentInitiation, error)
	VerifyPayment(ctx context.Context, transactionID string, amount float64) (*PaymentVerification, error)
}

// Mailer abstracts outbound email delivery
type Mailer interface {
	SendMembershipStatusEmail(ctx context.Context, to, name string, status domain.MembershipStatus, reason, paymentURL string) error
}
