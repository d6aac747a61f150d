package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"diu-alumnihub/internal/config"
	"diu-alumnihub/internal/core/services"
)

const (
	sandboxSessionURL    = "https://sandbox.sslcommerz.com/gwprocess/v4/api.php"
	liveSessionURL       = "https://securepay.sslcommerz.com/gwprocess/v4/api.php"
	sandboxValidationURL = "https://sandbox.sslcommerz.com/validator/api/validationserverAPI.php"
	liveValidationURL    = "https://securepay.sslcommerz.com/validator/api/validationserverAPI.php"
)

// SSLCommerzGateway implements the payment gateway against SSLCommerz
type SSLCommerzGateway struct {
	cfg    config.PaymentConfig
	client *http.Client
}

// NewSSLCommerzGateway creates a new SSLCommerz gateway adapter
func NewSSLCommerzGateway(cfg config.PaymentConfig) *SSLCommerzGateway {
	return &SSLCommerzGateway{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type sessionResponse struct {
	Status         string `json:"status"`
	SessionKey     string `json:"sessionkey"`
	GatewayPageURL string `json:"GatewayPageURL"`
	FailedReason   string `json:"failedreason"`
}

type validationResponse struct {
	Status   string `json:"status"`
	TranID   string `json:"tran_id"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// InitiatePayment opens a payment session and returns the hosted gateway URL
func (g *SSLCommerzGateway) InitiatePayment(ctx context.Context, req services.PaymentRequest) (*services.PaymentInitiation, error) {
	form := url.Values{}
	form.Set("store_id", g.cfg.StoreID)
	form.Set("store_passwd", g.cfg.StorePassword)
	form.Set("total_amount", strconv.FormatFloat(req.Amount, 'f', 2, 64))
	form.Set("currency", req.Currency)
	form.Set("tran_id", req.OrderID)
	form.Set("success_url", g.cfg.SuccessURL)
	form.Set("fail_url", g.cfg.FailURL)
	form.Set("cancel_url", g.cfg.CancelURL)
	form.Set("cus_name", req.CustomerName)
	form.Set("cus_email", req.CustomerEmail)
	form.Set("cus_phone", req.CustomerPhone)
	form.Set("cus_add1", "N/A")
	form.Set("cus_city", "Dhaka")
	form.Set("cus_country", "Bangladesh")
	form.Set("shipping_method", "NO")
	form.Set("product_name", "Alumni Membership Fee")
	form.Set("product_category", "membership")
	form.Set("product_profile", "non-physical-goods")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.sessionURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sslcommerz session request failed: %w", err)
	}
	defer resp.Body.Close()

	var session sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("sslcommerz session response malformed: %w", err)
	}

	if session.Status != "SUCCESS" || session.GatewayPageURL == "" {
		return &services.PaymentInitiation{
			Success:    false,
			FailReason: session.FailedReason,
		}, nil
	}

	return &services.PaymentInitiation{
		Success:       true,
		TransactionID: req.OrderID,
		PaymentURL:    session.GatewayPageURL,
	}, nil
}

// VerifyPayment validates a completed payment against the validation API.
// The payment is only valid when the gateway confirms it and the paid amount
// covers the expected one.
func (g *SSLCommerzGateway) VerifyPayment(ctx context.Context, transactionID string, expectedAmount float64) (*services.PaymentVerification, error) {
	query := url.Values{}
	query.Set("val_id", transactionID)
	query.Set("store_id", g.cfg.StoreID)
	query.Set("store_passwd", g.cfg.StorePassword)
	query.Set("format", "json")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.validationURL()+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sslcommerz validation request failed: %w", err)
	}
	defer resp.Body.Close()

	var validation validationResponse
	if err := json.NewDecoder(resp.Body).Decode(&validation); err != nil {
		return nil, fmt.Errorf("sslcommerz validation response malformed: %w", err)
	}

	if validation.Status != "VALID" && validation.Status != "VALIDATED" {
		return &services.PaymentVerification{Valid: false}, nil
	}

	amount, err := strconv.ParseFloat(validation.Amount, 64)
	if err != nil {
		return nil, fmt.Errorf("sslcommerz validation amount malformed: %w", err)
	}
	if amount < expectedAmount {
		return &services.PaymentVerification{Valid: false}, nil
	}

	return &services.PaymentVerification{
		Valid:         true,
		TransactionID: validation.TranID,
		Amount:        amount,
		Currency:      validation.Currency,
	}, nil
}

func (g *SSLCommerzGateway) sessionURL() string {
	if g.cfg.Sandbox {
		return sandboxSessionURL
	}
	return liveSessionURL
}

func (g *SSLCommerzGateway) validationURL() string {
	if g.cfg.Sandbox {
		return sandboxValidationURL
	}
	return liveValidationURL
}
