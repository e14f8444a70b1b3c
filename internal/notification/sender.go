package notification

import "context"

// Sender delivers transactional email with both HTML and plain-text bodies.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlContent, textContent string) error
}
