package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"diu-alumnihub/internal/config"
	"diu-alumnihub/internal/core/domain"
)

// MailService delivers transactional email through an HTTP webhook
type MailService struct {
	cfg    config.MailConfig
	client *http.Client
}

// NewMailService creates a new mail service
func NewMailService(cfg config.MailConfig) *MailService {
	return &MailService{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type mailPayload struct {
	To        string `json:"to"`
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// SendMembershipStatusEmail notifies an applicant about their request state
func (s *MailService) SendMembershipStatusEmail(ctx context.Context, to, name string, status domain.MembershipStatus, reason, paymentURL string) error {
	if !s.cfg.Enabled || s.cfg.WebhookURL == "" {
		return nil
	}

	subject, body := membershipStatusMessage(name, status, reason, paymentURL)
	return s.send(ctx, mailPayload{
		To:        to,
		FromName:  s.cfg.FromName,
		FromEmail: s.cfg.FromEmail,
		Subject:   subject,
		Body:      body,
	})
}

func (s *MailService) send(ctx context.Context, payload mailPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.WebhookURL, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("mail webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func membershipStatusMessage(name string, status domain.MembershipStatus, reason, paymentURL string) (string, string) {
	switch status {
	case domain.MembershipDraft:
		return "We received your membership request",
			fmt.Sprintf("Dear %s,\n\nYour membership request has been received and is awaiting verification.", name)
	case domain.MembershipInformationVerified:
		return "Your membership information has been verified",
			fmt.Sprintf("Dear %s,\n\nYour submitted information has been verified. Your membership request is moving forward.", name)
	case domain.MembershipPaymentRequired:
		body := fmt.Sprintf("Dear %s,\n\nYour membership request is approved pending payment. Please complete the membership fee payment to finish the process.", name)
		if paymentURL != "" {
			body += "\n\nPay here: " + paymentURL
		}
		return "Membership payment required", body
	case domain.MembershipApproved:
		return "Welcome! Your membership has been approved",
			fmt.Sprintf("Dear %s,\n\nCongratulations, your membership request has been approved. Welcome aboard!", name)
	case domain.MembershipRejected:
		body := fmt.Sprintf("Dear %s,\n\nUnfortunately your membership request was not approved.", name)
		if reason != "" {
			body += "\n\nReason: " + reason
		}
		return "Update on your membership request", body
	default:
		return "Update on your membership request",
			fmt.Sprintf("Dear %s,\n\nYour membership request status is now: %s.", name, status)
	}
}
