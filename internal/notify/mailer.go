// Package notify delivers the alert digest to the operator.
package notify

import (
	"context"
	"fmt"

	"github.com/ovelis/leaderwatch/internal/model"
	"github.com/wneessen/go-mail"
)

// Notifier delivers a rendered digest
type Notifier interface {
	// Notify sends the digest. Failure is reported, not retried.
	Notify(ctx context.Context, subject, body string) error
}

// SMTPNotifier sends the digest over authenticated SMTP submission
// (STARTTLS on port 587, gmail-style app passwords)
type SMTPNotifier struct {
	cfg model.EmailConfig
}

// NewSMTPNotifier creates an SMTP notifier from email configuration
func NewSMTPNotifier(cfg model.EmailConfig) (*SMTPNotifier, error) {
	if !cfg.EmailReady() {
		return nil, fmt.Errorf("email credentials not set (from, password, to, host required)")
	}
	return &SMTPNotifier{cfg: cfg}, nil
}

// Notify sends the digest as a plain-text message
func (n *SMTPNotifier) Notify(ctx context.Context, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(n.cfg.To); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	port := n.cfg.Port
	if port == 0 {
		port = 587
	}

	client, err := mail.NewClient(n.cfg.Host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.cfg.From),
		mail.WithPassword(n.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("create SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	return nil
}
