package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"

	"github.com/BersamaBelajar/gudang-pintar/config"
)

// Email is a single outbound message
type Email struct {
	To      string
	Subject string
	HTML    string
}

// Mailer sends transactional email. Delivery is best-effort: callers must
// never roll back committed state when a send fails.
type Mailer interface {
	Send(ctx context.Context, email Email) (string, error)
}

// resendMailer implements Mailer on top of the Resend API
type resendMailer struct {
	client *resend.Client
	from   string
}

// mockMailer is used in local development when no API key is configured
type mockMailer struct {
	from string
}

// New creates a mailer. Without an API key a logging mock is returned,
// same as the messaging client does for a missing connection string.
func New(cfg config.MailerConfig) Mailer {
	if cfg.APIKey == "" {
		return &mockMailer{from: cfg.From}
	}
	return &resendMailer{
		client: resend.NewClient(cfg.APIKey),
		from:   cfg.From,
	}
}

func (m *resendMailer) Send(ctx context.Context, email Email) (string, error) {
	// Bound the provider call; there is no retry here since a duplicate
	// notification is worse than a missed one.
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	return sent.Id, nil
}

func (m *mockMailer) Send(ctx context.Context, email Email) (string, error) {
	log.Info().
		Str("to", email.To).
		Str("subject", email.Subject).
		Msg("mock mailer: email not sent")
	return "mock-email-id", nil
}
