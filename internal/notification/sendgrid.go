package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	apperrors "github.com/yesmovie/backend/pkg/errors"
)

// SendGridSender implements Sender using the SendGrid API.
type SendGridSender struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
	logger    *slog.Logger
}

// NewSendGridSender creates a SendGrid-backed email sender.
func NewSendGridSender(apiKey, fromName, fromEmail string, logger *slog.Logger) (*SendGridSender, error) {
	if apiKey == "" {
		return nil, apperrors.Configuration("sendgrid api key is required")
	}
	if fromEmail == "" {
		return nil, apperrors.Configuration("sender email address is required")
	}
	return &SendGridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
		logger:    logger,
	}, nil
}

// Send delivers a single email. A non-2xx response from SendGrid is an error.
func (s *SendGridSender) Send(ctx context.Context, to, subject, htmlContent, textContent string) error {
	if to == "" {
		return apperrors.Validation("recipient address is required")
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.fromEmail),
		subject,
		mail.NewEmail("", to),
		textContent,
		htmlContent,
	)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode >= 400 {
		s.logger.ErrorContext(ctx, "sendgrid rejected message",
			slog.Int("status", response.StatusCode),
			slog.String("body", response.Body),
		)
		return fmt.Errorf("sendgrid send failed with status %d", response.StatusCode)
	}

	s.logger.DebugContext(ctx, "email sent",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.Int("status", response.StatusCode),
	)

	return nil
}
