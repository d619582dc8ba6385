package utils

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"bandos-api/core/config"
)

// EmailMessage is a plain-text email to one or more recipients.
type EmailMessage struct {
	To      []string
	Subject string
	Body    string
}

// SendEmailTLS sends a message over SMTP with STARTTLS. Used by the
// background mail worker, never inline in a request.
func SendEmailTLS(msg EmailMessage) error {
	cfg, ok := config.GetSafe()
	if !ok {
		return fmt.Errorf("config not loaded")
	}
	if cfg.SMTP.Host == "" {
		return fmt.Errorf("smtp host not configured")
	}

	addr := fmt.Sprintf("%s:%d", cfg.SMTP.Host, cfg.SMTP.Port)
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: cfg.SMTP.Host}); err != nil {
		return fmt.Errorf("smtp starttls: %w", err)
	}

	auth := smtp.PlainAuth("", cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(cfg.SMTP.From); err != nil {
		return fmt.Errorf("smtp mail: %w", err)
	}
	for _, rcpt := range msg.To {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp rcpt %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n",
		cfg.SMTP.From, strings.Join(msg.To, ", "), msg.Subject)
	if _, err := w.Write([]byte(headers + msg.Body)); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}

	return client.Quit()
}
