// internal/notification/email.go

package notification

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"gopkg.in/gomail.v2"
)

const senderName = "Rika Care"

type EmailSender interface {
	SendEmail(ctx context.Context, msg *EmailMessage) error
}

// SendGridEmailSender delivers through the SendGrid v3 API
type SendGridEmailSender struct {
	client *sendgrid.Client
	from   string
}

func NewSendGridEmailSender(apiKey, from string) *SendGridEmailSender {
	return &SendGridEmailSender{client: sendgrid.NewSendClient(apiKey), from: from}
}

func (s *SendGridEmailSender) SendEmail(ctx context.Context, msg *EmailMessage) error {
	message := mail.NewSingleEmail(
		mail.NewEmail(senderName, s.from),
		msg.Subject,
		mail.NewEmail("", msg.To),
		msg.Body,
		msg.HTML,
	)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email via SendGrid: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("SendGrid returned error status: %d", resp.StatusCode)
	}
	return nil
}

// SMTPEmailSender delivers through an SMTP relay
type SMTPEmailSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPEmailSender(host string, port int, username, password, from string) *SMTPEmailSender {
	dialer := gomail.NewDialer(host, port, username, password)
	dialer.TLSConfig = &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}
	return &SMTPEmailSender{dialer: dialer, from: from}
}

func (s *SMTPEmailSender) SendEmail(_ context.Context, msg *EmailMessage) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.from, senderName))
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	if msg.HTML != "" {
		m.SetBody("text/html", msg.HTML)
		m.AddAlternative("text/plain", msg.Body)
	} else {
		m.SetBody("text/plain", msg.Body)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}
	return nil
}

// MockEmailSender records messages instead of sending them
type MockEmailSender struct {
	mu   sync.Mutex
	Sent []EmailMessage
}

func (m *MockEmailSender) SendEmail(_ context.Context, msg *EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, *msg)
	return nil
}

func (m *MockEmailSender) Messages() []EmailMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]EmailMessage(nil), m.Sent...)
}
