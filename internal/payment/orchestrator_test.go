package payment

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yesmovie/backend/internal/domain"
	"github.com/yesmovie/backend/internal/event"
	apperrors "github.com/yesmovie/backend/pkg/errors"
	pkgkafka "github.com/yesmovie/backend/pkg/kafka"
)

// --- Mocks ---

type mockCartReader struct {
	mock.Mock
}

func (m *mockCartReader) GetCart(ctx context.Context, ownerID string) (*domain.Cart, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) InitializeTransaction(ctx context.Context, req *InitializeRequest) (*InitializeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*InitializeResult), args.Error(1)
}

func (m *mockGateway) VerifyTransaction(ctx context.Context, reference string) (*VerifyResult, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*VerifyResult), args.Error(1)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, to, subject, htmlContent, textContent string) error {
	args := m.Called(ctx, to, subject, htmlContent, textContent)
	return args.Error(0)
}

type mockDeduper struct {
	mock.Mock
}

func (m *mockDeduper) TryAcquire(ctx context.Context, reference string) (bool, error) {
	args := m.Called(ctx, reference)
	return args.Bool(0), args.Error(1)
}

// --- Test Helpers ---

type orchestratorMocks struct {
	carts   *mockCartReader
	gateway *mockGateway
	sender  *mockSender
	deduper *mockDeduper
}

func newTestOrchestrator(t *testing.T) (*Orchestrator, *orchestratorMocks) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	producer := event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)

	m := &orchestratorMocks{
		carts:   new(mockCartReader),
		gateway: new(mockGateway),
		sender:  new(mockSender),
		deduper: new(mockDeduper),
	}
	o := NewOrchestrator(m.carts, m.gateway, m.sender, m.deduper, producer, logger,
		"https://storefront.example.com/api/v1/payments/verify")
	return o, m
}

func buyer() Identity {
	return Identity{OwnerID: "owner-1", Email: "buyer@example.com"}
}

func twoItemCart() *domain.Cart {
	return &domain.Cart{
		ID:      "cart-1",
		OwnerID: "owner-1",
		Items: []domain.CartItem{
			{MovieID: "movie-1", Title: "The Long Voyage", Price: decimal.RequireFromString("12.50"), Quantity: 2},
			{MovieID: "movie-2", Title: "Night Train", Price: decimal.RequireFromString("8.00"), Quantity: 1},
		},
	}
}

// --- CreatePayment ---

func TestCreatePayment_Success(t *testing.T) {
	o, m := newTestOrchestrator(t)

	m.carts.On("GetCart", mock.Anything, "owner-1").Return(twoItemCart(), nil)
	m.gateway.On("InitializeTransaction", mock.Anything, mock.MatchedBy(func(req *InitializeRequest) bool {
		// 2 x 12.50 + 8.00 = 33.00 -> 3300 minor units
		return req.Amount == 3300 && req.Email == "buyer@example.com"
	})).Return(&InitializeResult{
		AuthorizationURL: "https://checkout.paystack.com/abc",
		Reference:        "ref-42",
	}, nil)

	result, err := o.CreatePayment(context.Background(), buyer())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "https://checkout.paystack.com/abc", result.RedirectURL)
	assert.Equal(t, "ref-42", result.Reference)
	m.gateway.AssertExpectations(t)
}

func TestCreatePayment_SubCentAmountRounding(t *testing.T) {
	o, m := newTestOrchestrator(t)

	cart := &domain.Cart{
		ID:      "cart-1",
		OwnerID: "owner-1",
		Items: []domain.CartItem{
			{MovieID: "movie-1", Title: "Cheap Seats", Price: decimal.RequireFromString("6.665"), Quantity: 3},
		},
	}
	m.carts.On("GetCart", mock.Anything, "owner-1").Return(cart, nil)
	m.gateway.On("InitializeTransaction", mock.Anything, mock.MatchedBy(func(req *InitializeRequest) bool {
		return req.Amount == 2000
	})).Return(&InitializeResult{AuthorizationURL: "https://checkout/x", Reference: "ref-1"}, nil)

	result, err := o.CreatePayment(context.Background(), buyer())
	require.NoError(t, err)
	assert.True(t, result.Success)
	m.gateway.AssertExpectations(t)
}

func TestCreatePayment_MissingIdentity(t *testing.T) {
	o, _ := newTestOrchestrator(t)

	_, err := o.CreatePayment(context.Background(), Identity{OwnerID: "owner-1"})
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)

	_, err = o.CreatePayment(context.Background(), Identity{Email: "buyer@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
}

func TestCreatePayment_CartUnavailable(t *testing.T) {
	o, m := newTestOrchestrator(t)

	m.carts.On("GetCart", mock.Anything, "owner-1").Return(nil, errors.New("connection reset"))

	result, err := o.CreatePayment(context.Background(), buyer())
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Message)
	m.gateway.AssertNotCalled(t, "InitializeTransaction")
}

func TestCreatePayment_GatewayFailureIsGenericOutward(t *testing.T) {
	o, m := newTestOrchestrator(t)

	m.carts.On("GetCart", mock.Anything, "owner-1").Return(twoItemCart(), nil)
	m.gateway.On("InitializeTransaction", mock.Anything, mock.Anything).
		Return(nil, apperrors.Gateway("payment gateway declined the request", `{"status":false,"message":"Invalid key"}`))

	result, err := o.CreatePayment(context.Background(), buyer())
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.NotContains(t, result.Message, "Invalid key")
}

// --- VerifyPayment ---

func TestVerifyPayment_SuccessBuildsManifestAndSendsInvoice(t *testing.T) {
	o, m := newTestOrchestrator(t)

	m.gateway.On("VerifyTransaction", mock.Anything, "ref-42").Return(&VerifyResult{
		Status:        TransactionStatusSuccess,
		Reference:     "ref-42",
		Amount:        3300,
		PayerEmail:    "buyer@example.com",
		TransactionID: "98765",
	}, nil)
	m.carts.On("GetCart", mock.Anything, "owner-1").Return(twoItemCart(), nil)
	m.deduper.On("TryAcquire", mock.Anything, "ref-42").Return(true, nil)
	m.sender.On("Send", mock.Anything, "buyer@example.com", invoiceSubject, mock.Anything, mock.Anything).Return(nil)

	result, err := o.VerifyPayment(context.Background(), buyer(), "ref-42")
	require.NoError(t, err)
	assert.True(t, result.Success)
	// One manifest entry per distinct cart line.
	require.Len(t, result.PurchasedItems, 2)
	assert.Equal(t, "The Long Voyage", result.PurchasedItems[0].Title)
	assert.Equal(t, 2, result.PurchasedItems[0].Quantity)
	assert.True(t, decimal.RequireFromString("33.00").Equal(result.AmountPaid))
	m.sender.AssertExpectations(t)
}

func TestVerifyPayment_NonSuccessStatusSendsNothing(t *testing.T) {
	o, m := newTestOrchestrator(t)

	m.gateway.On("VerifyTransaction", mock.Anything, "ref-42").Return(&VerifyResult{
		Status:    "abandoned",
		Reference: "ref-42",
	}, nil)

	result, err := o.VerifyPayment(context.Background(), buyer(), "ref-42")
	require.NoError(t, err)
	assert.False(t, result.Success)
	m.sender.AssertNotCalled(t, "Send")
	m.carts.AssertNotCalled(t, "GetCart")
}

func TestVerifyPayment_DuplicateVerificationDoesNotResend(t *testing.T) {
	o, m := newTestOrchestrator(t)

	m.gateway.On("VerifyTransaction", mock.Anything, "ref-42").Return(&VerifyResult{
		Status:    TransactionStatusSuccess,
		Reference: "ref-42",
		Amount:    3300,
	}, nil)
	m.carts.On("GetCart", mock.Anything, "owner-1").Return(twoItemCart(), nil)
	m.deduper.On("TryAcquire", mock.Anything, "ref-42").Return(false, nil)

	result, err := o.VerifyPayment(context.Background(), buyer(), "ref-42")
	require.NoError(t, err)
	assert.True(t, result.Success)
	m.sender.AssertNotCalled(t, "Send")
}

func TestVerifyPayment_InvoiceFailureDoesNotFailVerification(t *testing.T) {
	o, m := newTestOrchestrator(t)

	m.gateway.On("VerifyTransaction", mock.Anything, "ref-42").Return(&VerifyResult{
		Status:    TransactionStatusSuccess,
		Reference: "ref-42",
		Amount:    3300,
	}, nil)
	m.carts.On("GetCart", mock.Anything, "owner-1").Return(twoItemCart(), nil)
	m.deduper.On("TryAcquire", mock.Anything, "ref-42").Return(true, nil)
	m.sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp unavailable"))

	result, err := o.VerifyPayment(context.Background(), buyer(), "ref-42")
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestVerifyPayment_GatewayError(t *testing.T) {
	o, m := newTestOrchestrator(t)

	m.gateway.On("VerifyTransaction", mock.Anything, "ref-42").
		Return(nil, apperrors.Gateway("payment gateway unreachable", "dial tcp: refused"))

	result, err := o.VerifyPayment(context.Background(), buyer(), "ref-42")
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestVerifyPayment_EmptyReference(t *testing.T) {
	o, _ := newTestOrchestrator(t)

	_, err := o.VerifyPayment(context.Background(), buyer(), "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestVerifyPayment_MissingOwner(t *testing.T) {
	o, _ := newTestOrchestrator(t)

	_, err := o.VerifyPayment(context.Background(), Identity{Email: "x@example.com"}, "ref-42")
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
}
