package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// invoiceKeyPrefix namespaces the dedupe markers in Redis.
const invoiceKeyPrefix = "invoice:sent:"

// invoiceMarkerTTL bounds how long a dispatch marker is kept. Re-verifying a
// months-old payment re-sending a receipt is acceptable; unbounded keys are not.
const invoiceMarkerTTL = 30 * 24 * time.Hour

// InvoiceDeduper decides whether this verification call is the one that
// sends the invoice for a payment reference.
type InvoiceDeduper interface {
	TryAcquire(ctx context.Context, reference string) (bool, error)
}

// RedisInvoiceDeduper implements InvoiceDeduper with a SETNX marker per
// payment reference, so repeated verification of the same payment does not
// resend the receipt.
type RedisInvoiceDeduper struct {
	client *redis.Client
}

// NewRedisInvoiceDeduper creates a Redis-backed invoice deduper.
func NewRedisInvoiceDeduper(client *redis.Client) *RedisInvoiceDeduper {
	return &RedisInvoiceDeduper{client: client}
}

// TryAcquire returns true exactly once per reference within the marker TTL.
func (d *RedisInvoiceDeduper) TryAcquire(ctx context.Context, reference string) (bool, error) {
	acquired, err := d.client.SetNX(ctx, invoiceKeyPrefix+reference, 1, invoiceMarkerTTL).Result()
	if err != nil {
		return false, fmt.Errorf("acquire invoice marker: %w", err)
	}
	return acquired, nil
}
