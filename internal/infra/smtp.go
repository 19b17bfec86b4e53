package infra

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/45061/Hotelregistryapp/internal/config"

	"github.com/jordan-wright/email"
)

// smtpsPort is implicit TLS; any other port uses STARTTLS when offered.
const smtpsPort = 465

// Mailer delivers the daily report over SMTP.
type Mailer struct {
	host string
	port int
	from string
	auth smtp.Auth
}

func NewMailer(cfg *config.Config) *Mailer {
	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return &Mailer{host: cfg.SMTPHost, port: cfg.SMTPPort, from: from, auth: auth}
}

// SendReporte mails htmlBody to one recipient with the PDF attached from memory.
func (m *Mailer) SendReporte(ctx context.Context, to, subject, htmlBody, filename string, pdf []byte) error {
	if m.host == "" {
		return fmt.Errorf("mailer: SMTP_HOST is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	e, err := buildReporteEmail(m.from, to, subject, htmlBody, filename, pdf)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	if m.port == smtpsPort {
		err = e.SendWithTLS(addr, m.auth, &tls.Config{ServerName: m.host})
	} else {
		err = e.Send(addr, m.auth)
	}
	if err != nil {
		return fmt.Errorf("mailer: send to %s: %w", addr, err)
	}
	return nil
}

func buildReporteEmail(from, to, subject, htmlBody, filename string, pdf []byte) (*email.Email, error) {
	if len(pdf) == 0 {
		return nil, fmt.Errorf("mailer: empty report attachment")
	}
	e := email.NewEmail()
	e.From = from
	e.To = []string{to}
	e.Subject = subject
	e.HTML = []byte(htmlBody)
	if _, err := e.Attach(bytes.NewReader(pdf), filename, "application/pdf"); err != nil {
		return nil, fmt.Errorf("mailer: attach %s: %w", filename, err)
	}
	return e, nil
}
