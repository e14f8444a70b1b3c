package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yesmovie/backend/internal/domain"
	"github.com/yesmovie/backend/internal/event"
	"github.com/yesmovie/backend/internal/notification"
	apperrors "github.com/yesmovie/backend/pkg/errors"
)

// Identity carries the caller identity resolved by the HTTP layer.
type Identity struct {
	OwnerID string
	Email   string
}

// CartReader is the slice of the cart manager the orchestrator needs.
type CartReader interface {
	GetCart(ctx context.Context, ownerID string) (*domain.Cart, error)
}

// Orchestrator drives the payment lifecycle: checkout initialization against
// the external gateway, verification, and the post-verification invoice
// email. Payment results are never persisted; the gateway is the source of
// truth and verification re-derives everything it reports.
type Orchestrator struct {
	carts       CartReader
	gateway     Gateway
	sender      notification.Sender
	deduper     InvoiceDeduper
	producer    *event.Producer
	logger      *slog.Logger
	callbackURL string
}

// NewOrchestrator creates a payment orchestrator.
func NewOrchestrator(
	carts CartReader,
	gateway Gateway,
	sender notification.Sender,
	deduper InvoiceDeduper,
	producer *event.Producer,
	logger *slog.Logger,
	callbackURL string,
) *Orchestrator {
	return &Orchestrator{
		carts:       carts,
		gateway:     gateway,
		sender:      sender,
		deduper:     deduper,
		producer:    producer,
		logger:      logger,
		callbackURL: callbackURL,
	}
}

// CreatePayment initializes a hosted checkout for the caller's whole cart.
// The charge amount is recomputed from the cart's item snapshots on every
// call. Gateway failures come back as an unsuccessful result with a generic
// message; the raw gateway response stays in the logs.
func (o *Orchestrator) CreatePayment(ctx context.Context, identity Identity) (*domain.PaymentResult, error) {
	if identity.OwnerID == "" || identity.Email == "" {
		return nil, apperrors.NotAuthenticated("caller identity is incomplete")
	}

	cart, err := o.carts.GetCart(ctx, identity.OwnerID)
	if err != nil {
		o.logger.ErrorContext(ctx, "failed to retrieve cart for payment",
			slog.String("owner_id", identity.OwnerID),
			slog.String("error", err.Error()),
		)
		return &domain.PaymentResult{
			Success: false,
			Message: "Failed to retrieve cart for payment.",
		}, nil
	}

	amount := MinorUnits(cart.TotalAmount())

	result, err := o.gateway.InitializeTransaction(ctx, &InitializeRequest{
		Email:       identity.Email,
		Amount:      amount,
		CallbackURL: o.callbackURL,
	})
	if err != nil {
		o.logGatewayFailure(ctx, "initialize", identity.OwnerID, err)
		return &domain.PaymentResult{
			Success: false,
			Message: "Failed to initialize payment with the gateway.",
		}, nil
	}

	o.logger.InfoContext(ctx, "payment initialized",
		slog.String("owner_id", identity.OwnerID),
		slog.String("reference", result.Reference),
		slog.Int64("amount_minor", amount),
	)

	return &domain.PaymentResult{
		Success:     true,
		Reference:   result.Reference,
		RedirectURL: result.AuthorizationURL,
		Message:     "Payment initialized. Redirect to the payment gateway for approval.",
	}, nil
}

// VerifyPayment asks the gateway for the transaction's settled state. On
// success it rebuilds the purchase manifest from the caller's cart and sends
// the invoice email once per reference; the email is best-effort and its
// failure never fails the verification. The cart is left as is so the buyer
// can still see what was purchased.
func (o *Orchestrator) VerifyPayment(ctx context.Context, identity Identity, reference string) (*domain.PaymentResult, error) {
	if reference == "" {
		return nil, apperrors.Validation("payment reference is required")
	}
	if identity.OwnerID == "" {
		return nil, apperrors.NotAuthenticated("caller identity is incomplete")
	}

	verify, err := o.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		o.logGatewayFailure(ctx, "verify", identity.OwnerID, err)
		return &domain.PaymentResult{
			Success: false,
			Message: "Failed to verify payment with the gateway.",
		}, nil
	}

	if verify.Status != TransactionStatusSuccess {
		o.logger.WarnContext(ctx, "payment not settled",
			slog.String("reference", reference),
			slog.String("gateway_status", verify.Status),
		)
		return &domain.PaymentResult{
			Success: false,
			Message: "Payment verification failed.",
		}, nil
	}

	result := &domain.PaymentResult{
		Success:       true,
		Reference:     verify.Reference,
		TransactionID: verify.TransactionID,
		Message:       "Payment verified successfully.",
		AmountPaid:    MajorUnits(verify.Amount),
		PayerEmail:    verify.PayerEmail,
	}

	cart, err := o.carts.GetCart(ctx, identity.OwnerID)
	if err != nil {
		o.logger.ErrorContext(ctx, "failed to retrieve cart for purchase manifest",
			slog.String("owner_id", identity.OwnerID),
			slog.String("reference", reference),
			slog.String("error", err.Error()),
		)
		return &domain.PaymentResult{
			Success: false,
			Message: "Failed to retrieve cart for the purchase manifest.",
		}, nil
	}

	result.PurchasedItems = make([]domain.PurchasedItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		result.PurchasedItems = append(result.PurchasedItems, domain.PurchasedItem{
			MovieID:   item.MovieID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		})
	}

	o.sendInvoice(ctx, identity, reference, result)

	if err := o.producer.PublishPaymentVerified(ctx, identity.OwnerID, result); err != nil {
		o.logger.ErrorContext(ctx, "failed to publish payment.verified event",
			slog.String("reference", reference),
			slog.String("error", err.Error()),
		)
	}

	return result, nil
}

// sendInvoice delivers the receipt email exactly once per reference. Every
// failure path only logs; verification already succeeded.
func (o *Orchestrator) sendInvoice(ctx context.Context, identity Identity, reference string, result *domain.PaymentResult) {
	if identity.Email == "" {
		o.logger.WarnContext(ctx, "caller email missing, invoice not sent",
			slog.String("reference", reference),
		)
		return
	}

	acquired, err := o.deduper.TryAcquire(ctx, reference)
	if err != nil {
		o.logger.ErrorContext(ctx, "invoice dedupe check failed, invoice not sent",
			slog.String("reference", reference),
			slog.String("error", err.Error()),
		)
		return
	}
	if !acquired {
		o.logger.DebugContext(ctx, "invoice already sent for reference",
			slog.String("reference", reference),
		)
		return
	}

	html := buildHTMLInvoice(result)
	text := buildTextInvoice(result)
	if err := o.sender.Send(ctx, identity.Email, invoiceSubject, html, text); err != nil {
		o.logger.ErrorContext(ctx, "failed to send invoice email",
			slog.String("to", identity.Email),
			slog.String("reference", reference),
			slog.String("error", err.Error()),
		)
		return
	}

	o.logger.InfoContext(ctx, "invoice sent",
		slog.String("to", identity.Email),
		slog.String("reference", reference),
	)
}

// logGatewayFailure records a gateway error including the raw response
// detail when present.
func (o *Orchestrator) logGatewayFailure(ctx context.Context, operation, ownerID string, err error) {
	attrs := []any{
		slog.String("operation", operation),
		slog.String("owner_id", ownerID),
		slog.String("error", err.Error()),
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Detail != "" {
		attrs = append(attrs, slog.String("gateway_response", appErr.Detail))
	}
	o.logger.ErrorContext(ctx, fmt.Sprintf("payment gateway %s failed", operation), attrs...)
}
