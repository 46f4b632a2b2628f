// Package mailer delivers confirmation codes to users. Delivery is a
// collaborator behind the Sender interface: production uses SMTP, development
// falls back to logging the code.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
)

type Sender interface {
	SendConfirmationCode(ctx context.Context, email, code string) error
}

// SMTPSender sends the confirmation email through a plain SMTP relay.
type SMTPSender struct {
	addr string
	from string
	auth smtp.Auth
}

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

func (s *SMTPSender) SendConfirmationCode(ctx context.Context, email, code string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Your confirmation code\r\n\r\n"+
			"Use this code to confirm your registration: %s\r\n",
		s.from, email, code,
	)
	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("send confirmation code to %s: %w", email, err)
	}
	return nil
}

// LogSender writes the code to the log instead of sending mail.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendConfirmationCode(ctx context.Context, email, code string) error {
	s.logger.Info("confirmation code issued", "email", email, "code", code)
	return nil
}
