/*
Package mailx delivers outbound mail for the chat server, currently only the
email verification codes issued at registration.
*/
package mailx

import (
	"fmt"
	"net/smtp"

	"chatapp/internal/pkg/logx"
)

// Sender delivers a single plain-text mail.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends mail through a plain SMTP relay.
type SMTPSender struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPSender builds a sender for the relay at host:port. Username and
// password may be empty for an unauthenticated relay.
func NewSMTPSender(host string, port int, from, username, password string) *SMTPSender {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
		auth: auth,
	}
}

// Send delivers the mail synchronously.
func (s *SMTPSender) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", s.from, to, subject, body)

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}

	return nil
}

// LogSender is a development stand-in that logs instead of sending.
// Used when no SMTP host is configured.
type LogSender struct{}

// Send logs the would-be mail at Info level.
func (LogSender) Send(to, subject, body string) error {
	logx.Info("Outbound mail suppressed (no SMTP host configured)",
		"to", to,
		"subject", subject,
		"body", body,
	)
	return nil
}
