// Package mailer delivers outbound account email. Delivery is a
// best-effort side channel: callers log failures and carry on, so a mail
// outage never blocks registration or verification.
//
// The Mailer interface is satisfied by the SMTP and SendGrid providers in
// this package, and by fakes in tests.
package mailer

import "context"

// Email is a fully rendered outbound message.
type Email struct {
	To       string
	ToName   string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer sends a rendered message. Implementations must be safe for
// concurrent use by request handlers.
type Mailer interface {
	Send(ctx context.Context, e Email) error
}
