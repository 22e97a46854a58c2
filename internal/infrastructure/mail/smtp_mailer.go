package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/Supermercado-api/pkg/config"
)

// sender abstrae el envío para poder probar el armado del mensaje sin servidor SMTP.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer envía correos HTML por SMTP (implementa auth.Mailer).
type SMTPMailer struct {
	from   string
	dialer sender
}

// NewSMTPMailer construye el mailer. From por defecto es el usuario SMTP.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &SMTPMailer{
		from:   from,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

// Send envía el correo. gomail no acepta context: solo se respeta la cancelación previa al envío.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp: enviar a %s: %w", to, err)
	}
	return nil
}
