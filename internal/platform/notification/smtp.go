package notification

import (
	"context"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// SMTPEmailSender delivers email through an SMTP server using gomail.
type SMTPEmailSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPEmailSender(host string, port int, username, password, from string) *SMTPEmailSender {
	return &SMTPEmailSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// SendEmail composes and sends a plain-text message. gomail dials
// synchronously; the context is checked before the blocking send.
func (s *SMTPEmailSender) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	return d.DialAndSend(m)
}

// DevEmailSender logs the message instead of sending it. Used when SMTP is
// not configured so registration and login flows stay usable in development.
type DevEmailSender struct {
	logger zerolog.Logger
}

func NewDevEmailSender(logger zerolog.Logger) *DevEmailSender {
	return &DevEmailSender{logger: logger.With().Str("component", "dev-email").Logger()}
}

func (s *DevEmailSender) SendEmail(_ context.Context, to, subject, body string) error {
	s.logger.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("dev mode: email not sent")
	return nil
}
