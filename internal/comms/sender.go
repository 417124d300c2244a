package comms

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// Mailer delivers a rendered message to one recipient.
type Mailer interface {
	Send(ctx context.Context, payload EmailPayload) error
}

// SMTPConfig carries mail server settings.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMTPSender delivers messages over SMTP.
type SMTPSender struct {
	cfg    SMTPConfig
	logger *slog.Logger
}

// NewSMTPSender builds an SMTP-backed Mailer.
func NewSMTPSender(cfg SMTPConfig, logger *slog.Logger) *SMTPSender {
	return &SMTPSender{cfg: cfg, logger: logger}
}

// Send delivers one email. The context is honoured before dialing only; the
// SMTP exchange itself is bounded by the server's own timeouts.
func (s *SMTPSender) Send(ctx context.Context, payload EmailPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := email.NewEmail()
	e.From = s.cfg.From
	e.To = []string{payload.To}
	e.Subject = payload.Subject
	e.Text = []byte(payload.Body)

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("send email to %s: %w", payload.To, err)
	}
	if s.logger != nil {
		s.logger.Info("email sent", slog.String("to", payload.To), slog.String("subject", payload.Subject))
	}
	return nil
}
