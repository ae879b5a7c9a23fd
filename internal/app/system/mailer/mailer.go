// internal/app/system/mailer/mailer.go
package mailer

import (
	"context"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Email is a composed message ready for delivery.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer delivers composed emails.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// ResendMailer delivers email through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
	log    *zap.Logger
}

// NewResend creates a mailer backed by Resend. from is the sender
// address shown to recipients (e.g. "MEFEN <noreply@mefen.be>").
func NewResend(apiKey, from string, logger *zap.Logger) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
		log:    logger,
	}
}

// Send delivers a single email.
func (m *ResendMailer) Send(ctx context.Context, email Email) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		m.log.Error("email send failed",
			zap.Error(err),
			zap.String("to", email.To),
			zap.String("subject", email.Subject))
		return err
	}

	m.log.Info("email sent",
		zap.String("message_id", sent.Id),
		zap.String("to", email.To),
		zap.String("subject", email.Subject))
	return nil
}

// NopMailer logs instead of sending. Used in dev when no API key is
// configured, so reset links still show up in the server log.
type NopMailer struct {
	log *zap.Logger
}

// NewNop creates a mailer that only logs.
func NewNop(logger *zap.Logger) *NopMailer {
	return &NopMailer{log: logger}
}

// Send logs the email instead of delivering it.
func (m *NopMailer) Send(_ context.Context, email Email) error {
	m.log.Info("email delivery disabled; message dropped",
		zap.String("to", email.To),
		zap.String("subject", email.Subject),
		zap.String("text_body", email.TextBody))
	return nil
}
