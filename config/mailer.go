package config

import (
	"context"
	"crypto/tls"
	"fmt"

	mail "github.com/go-mail/mail/v2"
)

// Mailer sends HTML mail over SMTP.
type Mailer struct {
	host          string
	port          int
	user          string
	pass          string
	from          string // e.g. "Conference Portal <no-reply@your.org>"
	skipTLSVerify bool
}

func NewMailer(s *Settings) *Mailer {
	port := s.SMTPPort
	if port == 0 {
		port = 587
	}
	return &Mailer{
		host:          s.SMTPHost,
		port:          port,
		user:          s.SMTPUser,
		pass:          s.SMTPPass,
		from:          s.SMTPFrom,
		skipTLSVerify: s.SMTPSkipTLSVerify,
	}
}

func (m *Mailer) Send(ctx context.Context, to []string, subject, html string) error {
	if len(to) == 0 {
		return nil
	}
	if m.host == "" || m.from == "" {
		return fmt.Errorf("smtp not configured (SMTP_HOST/SMTP_FROM)")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	d := mail.NewDialer(m.host, m.port, m.user, m.pass)

	// STARTTLS is mandatory on 587
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{
		ServerName:         m.host,
		InsecureSkipVerify: m.skipTLSVerify, // dev only
	}

	return d.DialAndSend(msg)
}
