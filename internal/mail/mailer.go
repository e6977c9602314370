package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// Sender delivers one plain-text message. The transport is a black box: a
// failure is terminal for the request and never retried automatically.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer sends mail over authenticated SMTP with STARTTLS, matching the
// Gmail submission setup the service is configured for by default.
type SMTPMailer struct {
	host string
	port int
	user string
	pass string
}

// NewSMTPMailer constructs an SMTPMailer. Credentials come from config, not
// the environment at call sites.
func NewSMTPMailer(host string, port int, user, pass string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, pass: pass}
}

// Send connects, authenticates, delivers, and disconnects. One message per
// connection; no pooling.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.user); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	client, err := gomail.NewClient(m.host,
		gomail.WithPort(m.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.user),
		gomail.WithPassword(m.pass),
		gomail.WithTLSPortPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("mail send: %w", err)
	}
	return nil
}

var _ Sender = (*SMTPMailer)(nil)
