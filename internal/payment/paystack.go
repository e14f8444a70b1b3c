package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	apperrors "github.com/yesmovie/backend/pkg/errors"
)

// maxGatewayResponseBytes caps how much of a gateway response body is read.
const maxGatewayResponseBytes = 1 << 20

// httpDoer is the slice of pkg/httpclient the Paystack client needs. Both
// the plain retrying client and the circuit-breaker wrapper satisfy it.
type httpDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// PaystackClient implements Gateway against the Paystack transaction API.
type PaystackClient struct {
	http      httpDoer
	baseURL   string
	secretKey string
	logger    *slog.Logger
}

// NewPaystackClient creates a Paystack gateway client.
func NewPaystackClient(http httpDoer, baseURL, secretKey string, logger *slog.Logger) (*PaystackClient, error) {
	if baseURL == "" {
		return nil, apperrors.Configuration("paystack base url is required")
	}
	if secretKey == "" {
		return nil, apperrors.Configuration("paystack secret key is required")
	}
	return &PaystackClient{
		http:      http,
		baseURL:   baseURL,
		secretKey: secretKey,
		logger:    logger,
	}, nil
}

// paystackEnvelope is the common wrapper around every Paystack response.
type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type paystackInitializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type paystackVerifyData struct {
	ID        int64  `json:"id"`
	Status    string `json:"status"`
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Customer  struct {
		Email string `json:"email"`
	} `json:"customer"`
}

// InitializeTransaction starts a hosted checkout and returns the redirect
// URL plus the transaction reference.
func (c *PaystackClient) InitializeTransaction(ctx context.Context, req *InitializeRequest) (*InitializeResult, error) {
	payload, err := json.Marshal(map[string]any{
		"email":        req.Email,
		"amount":       req.Amount,
		"callback_url": req.CallbackURL,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal initialize request: %w", err)
	}

	data, err := c.call(ctx, http.MethodPost, "/transaction/initialize", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	var init paystackInitializeData
	if err := json.Unmarshal(data, &init); err != nil {
		return nil, apperrors.Gateway("unexpected response from payment gateway", string(data))
	}
	if init.AuthorizationURL == "" {
		return nil, apperrors.Gateway("unexpected response from payment gateway", string(data))
	}

	return &InitializeResult{
		AuthorizationURL: init.AuthorizationURL,
		Reference:        init.Reference,
	}, nil
}

// VerifyTransaction queries the gateway for the transaction's settled state.
func (c *PaystackClient) VerifyTransaction(ctx context.Context, reference string) (*VerifyResult, error) {
	data, err := c.call(ctx, http.MethodGet, "/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}

	var verify paystackVerifyData
	if err := json.Unmarshal(data, &verify); err != nil {
		return nil, apperrors.Gateway("unexpected response from payment gateway", string(data))
	}

	return &VerifyResult{
		Status:        verify.Status,
		Reference:     verify.Reference,
		Amount:        verify.Amount,
		PayerEmail:    verify.Customer.Email,
		TransactionID: fmt.Sprintf("%d", verify.ID),
	}, nil
}

// call issues one authenticated request and unwraps the Paystack envelope.
// The raw body of a failed response travels in the error's Detail field for
// diagnostics; it is never surfaced to API callers.
func (c *PaystackClient) call(ctx context.Context, method, path string, body io.Reader) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build gateway request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, apperrors.Gateway("payment gateway unreachable", err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxGatewayResponseBytes))
	if err != nil {
		return nil, apperrors.Gateway("failed to read payment gateway response", err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.ErrorContext(ctx, "payment gateway returned an error",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)
		return nil, apperrors.Gateway("payment gateway request failed", string(raw))
	}

	var envelope paystackEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, apperrors.Gateway("unexpected response from payment gateway", string(raw))
	}
	if !envelope.Status {
		return nil, apperrors.Gateway("payment gateway declined the request", string(raw))
	}

	return envelope.Data, nil
}
