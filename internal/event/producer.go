package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/yesmovie/backend/internal/domain"
	pkgkafka "github.com/yesmovie/backend/pkg/kafka"
)

// Kafka topic constants for storefront domain events.
const (
	TopicCartUpdated     = "yesmovie.cart.updated"
	TopicPaymentVerified = "yesmovie.payment.verified"
)

// Aggregate type constants.
const (
	AggregateTypeCart    = "cart"
	AggregateTypePayment = "payment"
)

// Source identifier for events originating from this service.
const SourceBackend = "yesmovie-backend"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	CartID    string            `json:"cart_id"`
	OwnerID   string            `json:"owner_id"`
	Items     []domain.CartItem `json:"items"`
	ItemCount int               `json:"item_count"`
	Total     decimal.Decimal   `json:"total"`
}

// PaymentVerifiedData is the payload for a payment.verified event.
type PaymentVerifiedData struct {
	Reference  string                 `json:"reference"`
	OwnerID    string                 `json:"owner_id"`
	PayerEmail string                 `json:"payer_email"`
	Amount     decimal.Decimal        `json:"amount"`
	Currency   string                 `json:"currency,omitempty"`
	Items      []domain.PurchasedItem `json:"items"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{kafka: kafka, logger: logger}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	data := CartUpdatedData{
		CartID:    cart.ID,
		OwnerID:   cart.OwnerID,
		Items:     cart.Items,
		ItemCount: cart.ItemCount(),
		Total:     cart.TotalAmount(),
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, cart.OwnerID, AggregateTypeCart, SourceBackend, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("owner_id", cart.OwnerID),
		slog.Int("item_count", data.ItemCount),
	)

	return nil
}

// PublishPaymentVerified publishes a payment.verified event.
func (p *Producer) PublishPaymentVerified(ctx context.Context, ownerID string, result *domain.PaymentResult) error {
	data := PaymentVerifiedData{
		Reference:  result.Reference,
		OwnerID:    ownerID,
		PayerEmail: result.PayerEmail,
		Amount:     result.AmountPaid,
		Currency:   result.Currency,
		Items:      result.PurchasedItems,
	}

	event, err := pkgkafka.NewEvent(TopicPaymentVerified, result.Reference, AggregateTypePayment, SourceBackend, data)
	if err != nil {
		return fmt.Errorf("create payment.verified event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicPaymentVerified, event); err != nil {
		return fmt.Errorf("publish payment.verified event: %w", err)
	}

	p.logger.DebugContext(ctx, "published payment.verified event",
		slog.String("reference", result.Reference),
		slog.String("owner_id", ownerID),
	)

	return nil
}
