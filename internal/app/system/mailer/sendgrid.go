// internal/app/system/mailer/sendgrid.go
package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// SendGridMailer delivers mail through the SendGrid v3 API.
type SendGridMailer struct {
	client   *sendgrid.Client
	from     string
	fromName string
	log      *zap.Logger
}

func NewSendGridMailer(apiKey, from, fromName string, log *zap.Logger) *SendGridMailer {
	return &SendGridMailer{
		client:   sendgrid.NewSendClient(apiKey),
		from:     from,
		fromName: fromName,
		log:      log,
	}
}

func (m *SendGridMailer) Send(ctx context.Context, e Email) error {
	msg := sgmail.NewSingleEmail(
		sgmail.NewEmail(m.fromName, m.from),
		e.Subject,
		sgmail.NewEmail(e.ToName, e.To),
		e.TextBody,
		e.HTMLBody,
	)

	resp, err := m.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		m.log.Warn("sendgrid rejected message",
			zap.Int("status", resp.StatusCode),
			zap.String("to", e.To))
		return fmt.Errorf("sendgrid send: status %d", resp.StatusCode)
	}
	return nil
}
