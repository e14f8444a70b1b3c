package payment

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yesmovie/backend/pkg/errors"
	"github.com/yesmovie/backend/pkg/httpclient"
)

func newPaystackClient(t *testing.T, serverURL string) *PaystackClient {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	client, err := NewPaystackClient(httpclient.New(cfg), serverURL, "sk_test_secret", logger)
	require.NoError(t, err)
	return client
}

func TestNewPaystackClient_MissingConfig(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	_, err := NewPaystackClient(httpclient.New(httpclient.DefaultConfig()), "", "sk", logger)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)

	_, err = NewPaystackClient(httpclient.New(httpclient.DefaultConfig()), "https://api.paystack.co", "", logger)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestInitializeTransaction_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "buyer@example.com", body["email"])
		assert.Equal(t, float64(2500), body["amount"])
		assert.NotEmpty(t, body["callback_url"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Authorization URL created",
			"data": {
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code": "abc123",
				"reference": "ref-42"
			}
		}`))
	}))
	defer server.Close()

	client := newPaystackClient(t, server.URL)
	result, err := client.InitializeTransaction(context.Background(), &InitializeRequest{
		Email:       "buyer@example.com",
		Amount:      2500,
		CallbackURL: "https://storefront.example.com/payments/verify",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/abc123", result.AuthorizationURL)
	assert.Equal(t, "ref-42", result.Reference)
}

func TestInitializeTransaction_GatewayDeclines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": false, "message": "Invalid key"}`))
	}))
	defer server.Close()

	client := newPaystackClient(t, server.URL)
	_, err := client.InitializeTransaction(context.Background(), &InitializeRequest{
		Email:  "buyer@example.com",
		Amount: 2500,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrGateway)

	// The raw body is retained for diagnostics but never in the message.
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Detail, "Invalid key")
	assert.NotContains(t, appErr.Message, "Invalid key")
}

func TestInitializeTransaction_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status": false, "message": "Invalid key"}`))
	}))
	defer server.Close()

	client := newPaystackClient(t, server.URL)
	_, err := client.InitializeTransaction(context.Background(), &InitializeRequest{Email: "b@example.com", Amount: 100})
	assert.ErrorIs(t, err, apperrors.ErrGateway)
}

func TestInitializeTransaction_MissingAuthorizationURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": true, "message": "ok", "data": {}}`))
	}))
	defer server.Close()

	client := newPaystackClient(t, server.URL)
	_, err := client.InitializeTransaction(context.Background(), &InitializeRequest{Email: "b@example.com", Amount: 100})
	assert.ErrorIs(t, err, apperrors.ErrGateway)
}

func TestVerifyTransaction_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/transaction/verify/ref-42", r.URL.Path)

		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {
				"id": 98765,
				"status": "success",
				"reference": "ref-42",
				"amount": 2500,
				"customer": {"email": "buyer@example.com"}
			}
		}`))
	}))
	defer server.Close()

	client := newPaystackClient(t, server.URL)
	result, err := client.VerifyTransaction(context.Background(), "ref-42")
	require.NoError(t, err)
	assert.Equal(t, TransactionStatusSuccess, result.Status)
	assert.Equal(t, "ref-42", result.Reference)
	assert.Equal(t, int64(2500), result.Amount)
	assert.Equal(t, "buyer@example.com", result.PayerEmail)
	assert.Equal(t, "98765", result.TransactionID)
}

func TestVerifyTransaction_AbandonedStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {"id": 1, "status": "abandoned", "reference": "ref-43", "amount": 0, "customer": {"email": ""}}
		}`))
	}))
	defer server.Close()

	client := newPaystackClient(t, server.URL)
	result, err := client.VerifyTransaction(context.Background(), "ref-43")
	require.NoError(t, err)
	assert.Equal(t, "abandoned", result.Status)
}

func TestVerifyTransaction_Unreachable(t *testing.T) {
	client := newPaystackClient(t, "http://127.0.0.1:1")
	_, err := client.VerifyTransaction(context.Background(), "ref-42")
	assert.ErrorIs(t, err, apperrors.ErrGateway)
}
